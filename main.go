package main

import "github.com/envdelta/envdelta/cmd/envdelta"

func main() { envdelta.Execute() }
