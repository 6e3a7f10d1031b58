package outboundcalls

import (
	"context"
	"net/http"
)

func FetchWithoutContext(url string) {
	http.Get(url)                     // want "context-free call to http.Get"
	http.Head(url)                    // want "context-free call to http.Head"
	http.Post(url, "text/plain", nil) // want "context-free call to http.Post"
	http.PostForm(url, nil)           // want "context-free call to http.PostForm"
}

func FetchWithDefaultClient(ctx context.Context, url string) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	http.DefaultClient.Do(req) // want "use of http.DefaultClient"
}

func FetchWithOwnClient(ctx context.Context, url string) {
	client := &http.Client{}
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	client.Do(req)
	client.Get(url)
}

func Explode() {
	panic("forbidden") // want "panic outside main"
}

type shadow struct{}

func (shadow) main() {
	panic("method named main") // want "panic outside main"
}
