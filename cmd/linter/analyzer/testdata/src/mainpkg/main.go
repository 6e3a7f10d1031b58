package main

func main() {
	panic("allowed in main")
}

func init() {
	panic("forbidden in init") // want "panic outside main"
}

func helper() {
	func() {
		panic("closure outside main") // want "panic outside main"
	}()
}
