package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	heading = color.New(color.Bold)
	accent  = color.New(color.FgCyan)
	failure = color.New(color.FgRed, color.Bold)
)

func printSummary(w io.Writer, s *Settings) {
	heading.Fprintln(w, "Hosting:")
	for _, r := range s.Routes.Routes() {
		fmt.Fprintf(w, "    %s  as  %s\n", r.Local, accent.Sprint(r.Virtual))
	}

	fmt.Fprintln(w)
	heading.Fprintln(w, "On:")
	for _, addr := range s.Addrs {
		fmt.Fprintf(w, "    %s\n", accent.Sprint(addr))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Press [ENTER] to close server.")
}

func printError(w io.Writer, err error) {
	failure.Fprintln(w, err)
}

// waitForEnter closes the returned channel once a full line is read from r.
// A closed or empty input never closes it, so the server keeps running when
// started without a terminal.
func waitForEnter(r io.Reader) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		if _, err := bufio.NewReader(r).ReadString('\n'); err == nil {
			close(ch)
		}
	}()
	return ch
}
