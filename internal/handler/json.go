package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gw0212/maplink-manager/internal/model"
	"github.com/gw0212/maplink-manager/internal/pool"
	"github.com/rs/zerolog/log"
)

var bufferPool = pool.New(func() *bytes.Buffer { return new(bytes.Buffer) })

// decodeResolveRequest never fails: an unreadable body yields an empty request,
// which validation then rejects. A JSON string holding an encoded object is
// decoded a second time. Keys are matched case-sensitively, so "URL" is not "url".
func decodeResolveRequest(body []byte) model.ResolveRequest {
	var req model.ResolveRequest

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return req
	}

	if body[0] == '"' {
		var inner string
		if err := json.Unmarshal(body, &inner); err != nil {
			log.Debug().Err(err).Msg("request body is not valid JSON")
			return req
		}
		body = []byte(inner)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		log.Debug().Err(err).Msg("request body is not a resolve request")
		return req
	}

	if err := stringField(fields, "url", &req.URL); err != nil {
		log.Debug().Err(err).Msg("request body is not a resolve request")
		return model.ResolveRequest{}
	}
	if err := stringField(fields, "service", &req.Service); err != nil {
		log.Debug().Err(err).Msg("request body is not a resolve request")
		return model.ResolveRequest{}
	}

	return req
}

// stringField leaves dst untouched when key is absent or null.
func stringField(fields map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// decodeResolveForm reads url and service from a form-encoded body.
func decodeResolveForm(body []byte) model.ResolveRequest {
	form, err := url.ParseQuery(string(body))
	if err != nil {
		log.Debug().Err(err).Msg("form body has malformed pairs")
	}
	return model.ResolveRequest{URL: form.Get("url"), Service: form.Get("service")}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	buf := bufferPool.Get()
	defer bufferPool.Put(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal_error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message})
}
