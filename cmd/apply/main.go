// cmd/apply is a terminal client for the "Start a Chapter" application.
// It drives the same wizard controller the web form uses, posting the final
// submission to a running outreach server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brightcode-org/outreach/internal/wizard"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "outreach server base URL")
	flag.Parse()

	reg := wizard.ChapterApplicationForm()
	client := wizard.NewMultipartClient(*serverURL + "/api/chapter-application")

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 1<<20), 1<<20)

	ctrl := wizard.NewController(reg, client,
		wizard.WithReport(func(f wizard.FieldSpec, msg string) {
			fmt.Printf("  ✗ %s: %s\n", f.Label, msg)
		}),
	)

	fmt.Println("Start a Chapter application")
	fmt.Println("Commands: n(ext), b(ack), e(dit), s(ubmit), q(uit)")

	for {
		step := reg.Steps[ctrl.Current()]
		fmt.Printf("\n[Step %d/%d] %s\n", ctrl.Current()+1, len(reg.Steps), step.Title)
		if step.Description != "" {
			fmt.Println(step.Description)
		}
		promptStep(in, ctrl, reg)

		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		switch strings.TrimSpace(strings.ToLower(in.Text())) {
		case "n", "next":
			if !ctrl.Next() {
				fmt.Println("  (fix the reported fields before moving on)")
			}
		case "b", "back":
			ctrl.Back()
		case "e", "edit":
			// loop back around and prompt the step's fields again
		case "s", "submit":
			submit(ctrl)
		case "q", "quit":
			return
		default:
			fmt.Println("  unknown command")
		}
	}
}

func promptStep(in *bufio.Scanner, ctrl *wizard.Controller, reg *wizard.Registry) {
	for _, f := range reg.FieldsForStep(ctrl.Current()) {
		if !ctrl.Value(f.Name).Empty() {
			continue
		}
		label := f.Label
		if f.Required {
			label += " (required)"
		}
		if len(f.Options) > 0 {
			label += " [" + strings.Join(f.Options, " | ") + "]"
		}
		fmt.Printf("%s: ", label)
		if !in.Scan() {
			return
		}
		text := strings.TrimSpace(in.Text())
		if text == "" {
			continue
		}

		switch f.Kind {
		case wizard.KindFile:
			file, err := readFile(text)
			if err != nil {
				fmt.Printf("  ✗ %v\n", err)
				continue
			}
			ctrl.Set(f.Name, wizard.Value{File: file})
		case wizard.KindCheckboxGroup:
			var picks []string
			for _, p := range strings.Split(text, ",") {
				if p = strings.TrimSpace(p); p != "" {
					picks = append(picks, p)
				}
			}
			ctrl.Set(f.Name, wizard.Value{Strings: picks})
		default:
			ctrl.SetText(f.Name, text)
		}
	}
}

func submit(ctrl *wizard.Controller) {
	outcome := ctrl.Submit(context.Background())
	switch o := outcome.(type) {
	case wizard.Accepted:
		fmt.Println("\n✓", o.Message)
		fmt.Println("  notified:", strings.Join(o.TargetRecipients, ", "))
		if o.FallbackGroupUsed {
			fmt.Println("  (routed to the fallback distribution list)")
		}
		if o.ConfirmationEmailSent {
			fmt.Println("  a confirmation email is on its way to you")
		} else if o.ConfirmationEmailError != "" {
			fmt.Println("  note:", o.ConfirmationEmailError)
		}
		os.Exit(0)
	case wizard.Rejected:
		fmt.Println("\n✗", o.Message)
		fmt.Println("  your answers are preserved, fix and submit again")
	case nil:
		fmt.Println("  (submit only works from the last step once it validates)")
	}
}

func readFile(path string) (*wizard.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s", path)
	}
	return &wizard.File{
		Name: filepath.Base(path),
		Data: data,
	}, nil
}
