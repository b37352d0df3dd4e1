package main

import (
	"encoding/json"
	"fmt"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// printJSON renders v as indented JSON on stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
