package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func TestHandleError(t *testing.T) {
	var out bytes.Buffer
	prev := color.Output
	color.Output = &out
	defer func() { color.Output = prev }()

	boom := errors.New("box is full")
	if err := (&OutputOptions{}).HandleError(boom); !errors.Is(err, boom) {
		t.Fatalf("without --json the error goes back to cobra, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be printed, got %q", out.String())
	}

	if err := (&OutputOptions{JSON: true}).HandleError(boom); err != nil {
		t.Fatalf("with --json the error is printed, got %v", err)
	}
	var body map[string]string
	if err := json.Unmarshal(out.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if body["error"] != "box is full" {
		t.Fatalf("unexpected body %v", body)
	}
	if err := (&OutputOptions{JSON: true}).HandleError(nil); err != nil {
		t.Fatalf("nil stays nil, got %v", err)
	}
}

func TestCatchArgsRegisterInteractive(t *testing.T) {
	cmd := &cobra.Command{Use: "catch"}
	o := &CatchOptions{}
	AddCatchArgs(cmd, o)
	if err := cmd.ParseFlags([]string{"-i", "--edition", "Rot"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if !o.Interactive || o.Edition != "Rot" {
		t.Fatalf("unexpected options %+v", o)
	}
}
