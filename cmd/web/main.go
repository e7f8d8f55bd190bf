package main

import "freelance_backend/internal/app"

func main() {
	app.Run()
}
