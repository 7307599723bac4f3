package main

import (
	"lifex.health/infrastructure"
	"lifex.health/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
