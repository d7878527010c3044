package main

import "github.com/TheApexWu/BloodMeridianNLP/cmd/meridian/cmd"

func main() {
	cmd.Execute()
}
