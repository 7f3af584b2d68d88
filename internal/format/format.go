// Package format writes command output in shapes the surrounding tooling
// expects, including Slack's code-block fencing.
package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes v to w as indented JSON. In slack mode the output is
// fenced so it pastes cleanly into a channel.
func WriteJSON(w io.Writer, v any, slackMode bool) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if slackMode {
		fmt.Fprintln(w, "```")
	}
	fmt.Fprintln(w, string(data))
	if slackMode {
		fmt.Fprintln(w, "```")
	}
	return nil
}
