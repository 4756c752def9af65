package main

import "github.com/mavlink/mavsdk-recipe/cmd/recipe/internal"

func main() {
	internal.Execute()
}
