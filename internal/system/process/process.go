// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

// Package process wraps the Unix calls lish uses to manage process
// groups and terminal ownership.
package process

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// T (process) is lish's own process and its controlling terminal.
type T struct {
	group    int
	id       int
	terminal int
}

type process = T

// New describes the current process. A negative terminal disables
// terminal ownership changes.
func New(terminal int) *T {
	id := unix.Getpid()
	group, _ := unix.Getpgid(id)

	return &T{group: group, id: id, terminal: terminal}
}

// BecomeForegroundGroup waits until lish is in the foreground and then
// places it in its own process group.
func (p *process) BecomeForegroundGroup() (err error) {
	for p.group != p.ForegroundGroup() {
		err = unix.Kill(-p.group, unix.SIGTTIN)
		if err != nil {
			return
		}

		p.group, err = unix.Getpgid(p.id)
		if err != nil {
			return
		}
	}

	if p.id != p.group {
		err = unix.Setpgid(p.id, p.id)
		if err != nil {
			return
		}

		p.group = p.id
	}

	p.SetForegroundGroup(p.group)

	return
}

// ForegroundGroup returns the terminal's foreground group ID.
func (p *process) ForegroundGroup() int {
	if p.terminal < 0 {
		return p.group
	}

	g, err := unix.IoctlGetInt(p.terminal, unix.TIOCGPGRP)
	if err != nil {
		return 0
	}

	return g
}

// Group returns lish's process group ID.
func (p *process) Group() int {
	return p.group
}

// ID returns lish's process ID.
func (p *process) ID() int {
	return p.id
}

// RestoreForegroundGroup gives the terminal back to lish.
func (p *process) RestoreForegroundGroup() {
	if p.group == p.ForegroundGroup() {
		return
	}

	p.SetForegroundGroup(p.group)
}

// SetForegroundGroup gives the terminal to the group g.
func (p *process) SetForegroundGroup(g int) {
	if p.terminal < 0 {
		return
	}

	err := unix.IoctlSetPointerInt(p.terminal, unix.TIOCSPGRP, g)
	if err != nil {
		println(err.Error())
	}
}

// SysProcAttr returns the attributes for a child joining group, or
// leading a new group when group is zero. Children only take the
// terminal when foreground is set and lish has a terminal.
func (p *process) SysProcAttr(foreground bool, group int) *syscall.SysProcAttr {
	if p.terminal < 0 {
		return &syscall.SysProcAttr{Setpgid: true, Pgid: group}
	}

	sys := &syscall.SysProcAttr{Foreground: foreground, Setpgid: true}

	if group == 0 {
		sys.Ctty = p.terminal
	} else {
		sys.Pgid = group
	}

	return sys
}

// Continue sends a SIGCONT to the group g.
func Continue(g int) {
	_ = unix.Kill(-g, unix.SIGCONT)
}

// Interrupt sends a SIGINT to the process pid.
func Interrupt(pid int) {
	_ = unix.Kill(pid, unix.SIGINT)
}

// Stop sends a SIGSTOP to the process pid.
func Stop(pid int) {
	_ = unix.Kill(pid, unix.SIGSTOP)
}

// Terminate sends a SIGTERM to the process pid.
func Terminate(pid int) {
	_ = unix.Kill(pid, unix.SIGTERM)
}
