// Package admin implements the operator commands that run against the
// database directly: creating accounts and switching self-registration.
package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	ErrUsage            = errors.New("usage: odyssey-admin adduser | registration on|off|status")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// UserCreator adds accounts without consulting the registration flag.
type UserCreator interface {
	CreateUser(ctx context.Context, name, username, password string) error
}

// RegistrationSwitch reads and writes the allow_registration flag.
type RegistrationSwitch interface {
	AllowRegistration(ctx context.Context) (bool, error)
	SetAllowRegistration(ctx context.Context, allow bool) error
}

type App struct {
	in      *bufio.Reader
	out     io.Writer
	users   UserCreator
	configs RegistrationSwitch
}

func NewApp(in io.Reader, out io.Writer, users UserCreator, configs RegistrationSwitch) *App {
	return &App{in: bufio.NewReader(in), out: out, users: users, configs: configs}
}

// Run executes a single command given as positional args.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "adduser":
		return a.AddUser(ctx)
	case "registration":
		if len(args) != 2 {
			return ErrUsage
		}
		return a.Registration(ctx, args[1])
	default:
		return ErrUsage
	}
}

func (a *App) AddUser(ctx context.Context) error {
	name, err := GetSimpleText(a.in, "Full name", a.out)
	if err != nil {
		return err
	}
	username, err := GetSimpleText(a.in, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	if err := a.users.CreateUser(ctx, name, username, password); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "User %q created\n", username)
	return nil
}

func (a *App) Registration(ctx context.Context, mode string) error {
	switch mode {
	case "on", "off":
		if err := a.configs.SetAllowRegistration(ctx, mode == "on"); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Registration %s\n", mode)
		return nil
	case "status":
		allow, err := a.configs.AllowRegistration(ctx)
		if err != nil {
			return err
		}
		state := "off"
		if allow {
			state = "on"
		}
		fmt.Fprintf(a.out, "Registration %s\n", state)
		return nil
	default:
		return ErrUsage
	}
}
