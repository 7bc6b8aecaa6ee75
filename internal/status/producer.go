// Package status feeds the bar's status2d module from the root window's
// WM_NAME and lets a click forward a real-time signal to the process
// that set it, the dwmblocks convention.
package status

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tagwm/tagwm/internal/display"
)

// Producer launches the compile-time status command and reads back
// whatever it publishes to the root window's WM_NAME.
type Producer struct {
	Disp display.Display
	// Name is the status command's process name, resolved via /proc for
	// SignalBlock's pid lookup. It is passed apart from Start's command
	// line, which may be a wrapper script; cmd/tagwm passes the same
	// StatusBarName value for both.
	Name string

	cmd *exec.Cmd
}

func NewProducer(disp display.Display, name string) *Producer {
	return &Producer{Disp: disp, Name: name}
}

// Start launches cmdline as a child process that is expected to set the
// root window's WM_NAME itself; the WM never writes that property, only
// reads it.
func (p *Producer) Start(cmdline string) error {
	if cmdline == "" {
		return nil
	}
	cmd := exec.Command("/bin/sh", "-c", cmdline)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("status: start %q: %w", cmdline, err)
	}
	go func() { _ = cmd.Wait() }()
	p.cmd = cmd
	return nil
}

// Stop terminates the producer process, if one was started.
func (p *Producer) Stop() {
	if p.cmd != nil && p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
}

// Text reads the current status string from WM_NAME, splitting it on
// ';' into a primary half (shown on the bar) and an extra half.
func (p *Producer) Text() (primary, extra string) {
	name, err := p.Disp.WMName(p.Disp.Root())
	if err != nil {
		return "", ""
	}
	return splitStatus(name)
}

func splitStatus(name string) (primary, extra string) {
	if i := strings.IndexByte(name, ';'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}

// SignalBlock sends SIGRTMIN+n to every running process named p.Name, so
// a click on a status block can ask just that block to refresh. An
// unresolvable pid (no matching process) is a documented no-op.
func (p *Producer) SignalBlock(n int) {
	for _, pid := range pidsByName(p.Name) {
		sigqueueBlock(pid, n)
	}
}

func pidsByName(name string) []int {
	if name == "" {
		return nil
	}
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil
	}
	var pids []int
	for _, e := range entries {
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		comm, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(comm)) == name {
			pids = append(pids, pid)
		}
	}
	return pids
}
