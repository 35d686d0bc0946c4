package shell

import (
	"bufio"
	"fmt"
	"io"
)

// Run is the plain-text bot loop. It prints the welcome line, then reads
// commands from in until close/exit or end of input.
func (s *Shell) Run(in io.Reader, out io.Writer) error {
	_, _ = fmt.Fprintln(out, Welcome)
	sc := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(out, Prompt)
		if !sc.Scan() {
			_, _ = fmt.Fprintln(out)
			return sc.Err()
		}
		res := s.Execute(sc.Text())
		if res.Output != "" {
			_, _ = fmt.Fprintln(out, res.Output)
		}
		if res.Exit {
			return nil
		}
	}
}
