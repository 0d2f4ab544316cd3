package main

import "github.com/MrAayushCode/sisyphus-engine-sub000/cmd/sis/root"

func main() {
	root.Execute()
}
