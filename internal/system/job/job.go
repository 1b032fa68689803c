// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || openbsd || solaris

// Package job starts external programs for lish and tracks them as jobs.
package job

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/lish/internal/system/process"
	"golang.org/x/sys/unix"
)

// ErrNoJob is returned when a job number does not name a job.
var ErrNoJob = errors.New("no such job")

type state int

const (
	running state = iota
	stopped
	done
)

func (s state) String() string {
	switch s {
	case running:
		return "Running"
	case stopped:
		return "Stopped"
	}

	return "Done"
}

type job struct {
	argv   []string
	number int
	pid    int
	state  state
	status int
}

// T (job) is the job table. It is only used from the evaluating goroutine.
type T struct {
	control bool
	files   []*os.File
	jobs    map[int]*job
	pids    map[int]*job
	self    *process.T
}

type table = T

// New creates a job table. When control is set children are placed in
// their own process groups and given the terminal while in the foreground.
func New(self *process.T, control bool) *T {
	return &T{
		control: control,
		files:   []*os.File{os.Stdin, os.Stdout, os.Stderr},
		jobs:    map[int]*job{},
		pids:    map[int]*job{},
		self:    self,
	}
}

// Launch starts argv. The returned pid is waited for with Wait unless
// background is set, in which case it is reaped by Poll.
func (t *table) Launch(argv []string, background bool) (int, error) {
	if len(argv) == 0 {
		return 0, errors.New("empty command")
	}

	path, executable, err := adapted.LookPath(argv[0], os.Getenv("PATH"))
	if err != nil {
		return 0, err
	}

	if !executable {
		return 0, fmt.Errorf("%s: is a directory", argv[0])
	}

	attr := &os.ProcAttr{Files: t.files}
	if t.control {
		attr.Sys = t.self.SysProcAttr(!background, 0)
	}

	p, err := os.StartProcess(path, argv, attr)
	if err != nil {
		return 0, err
	}

	// Children are reaped with Wait4.
	_ = p.Release()

	j := &job{argv: argv, number: t.next(), pid: p.Pid}

	t.jobs[j.number] = j
	t.pids[j.pid] = j

	return j.pid, nil
}

// Wait blocks until pid exits or stops and returns its status. A stopped
// child stays in the job table.
func (t *table) Wait(pid int) (int, error) {
	j, ok := t.pids[pid]
	if !ok {
		return 0, fmt.Errorf("%d: %w", pid, ErrNoJob)
	}

	defer t.restore()

	for j.state != done {
		var status unix.WaitStatus

		_, err := unix.Wait4(pid, &status, unix.WUNTRACED, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		} else if err != nil {
			t.remove(j)

			return 0, err
		}

		t.update(j, status)

		if j.state == stopped {
			fmt.Fprintf(os.Stdout, "\n[%d]+\tStopped\t%s\n", j.number, strings.Join(j.argv, " "))

			return j.status, nil
		}
	}

	t.remove(j)

	return j.status, nil
}

// Poll reaps any children that have changed state without blocking.
func (t *table) Poll() {
	for pid, j := range t.pids {
		var status unix.WaitStatus

		options := unix.WNOHANG | unix.WUNTRACED | unix.WCONTINUED

		wpid, err := unix.Wait4(pid, &status, options, nil)
		if err != nil {
			if errors.Is(err, unix.ECHILD) {
				j.state = done
			}

			continue
		}

		if wpid == pid {
			t.update(j, status)
		}
	}
}

// Bg continues job n (the most recent job when n is zero) without
// waiting for it.
func (t *table) Bg(n int) (int, error) {
	j, err := t.find(n)
	if err != nil {
		return 0, err
	}

	t.resume(j)

	return j.pid, nil
}

// Fg continues job n (the most recent job when n is zero), gives it the
// terminal and waits for it.
func (t *table) Fg(n int) (int, error) {
	j, err := t.find(n)
	if err != nil {
		return 0, err
	}

	fmt.Fprintln(os.Stdout, strings.Join(j.argv, " "))

	if t.control {
		t.self.SetForegroundGroup(j.pid)
	}

	t.resume(j)

	return t.Wait(j.pid)
}

// List describes every job. Finished jobs are listed once and then
// forgotten.
func (t *table) List() []string {
	numbers := t.numbers()

	lines := make([]string, 0, len(numbers))

	for k, n := range numbers {
		j := t.jobs[n]

		label := fmt.Sprintf("[%d]", n)
		if k == len(numbers)-1 {
			label += "+"
		}

		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", label, j.state, strings.Join(j.argv, " ")))

		if j.state == done {
			t.remove(j)
		}
	}

	return lines
}

func (t *table) find(n int) (*job, error) {
	if n == 0 {
		numbers := t.numbers()
		if len(numbers) == 0 {
			return nil, ErrNoJob
		}

		n = numbers[len(numbers)-1]
	}

	j, ok := t.jobs[n]
	if !ok || j.state == done {
		return nil, fmt.Errorf("%d: %w", n, ErrNoJob)
	}

	return j, nil
}

func (t *table) next() int {
	n := 1
	for k := range t.jobs {
		if k >= n {
			n = k + 1
		}
	}

	return n
}

func (t *table) numbers() []int {
	ns := make([]int, 0, len(t.jobs))
	for n := range t.jobs {
		ns = append(ns, n)
	}

	sort.Ints(ns)

	return ns
}

func (t *table) remove(j *job) {
	delete(t.jobs, j.number)
	delete(t.pids, j.pid)
}

func (t *table) restore() {
	if t.control {
		t.self.RestoreForegroundGroup()
	}
}

func (t *table) resume(j *job) {
	if t.control {
		process.Continue(j.pid)
	} else {
		_ = unix.Kill(j.pid, unix.SIGCONT)
	}

	j.state = running
}

func (t *table) update(j *job, status unix.WaitStatus) {
	switch {
	case status.Continued():
		j.state = running
	case status.Stopped():
		j.state = stopped
		j.status = 128 + int(status.StopSignal())
	case status.Exited():
		j.state = done
		j.status = status.ExitStatus()
	case status.Signaled():
		j.state = done
		j.status = 128 + int(status.Signal())
	}
}
