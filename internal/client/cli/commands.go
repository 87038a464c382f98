package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/urfave/cli/v2"
)

func tokenFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "token",
		Aliases:  []string{"t"},
		Usage:    "access token returned by register or login",
		EnvVars:  []string{"GOPHAUTH_TOKEN"},
		Required: true,
	}
}

func (r *runner) registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account and print its access token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "display name", Required: true},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "login email", Required: true},
			&cli.StringFlag{Name: "role", Aliases: []string{"r"}, Usage: "USER or ADMIN (server default is USER)"},
		},
		Action: func(c *cli.Context) error {
			password, err := r.password()
			if err != nil {
				return err
			}
			return r.call(c, func(ctx context.Context, cl client.Client) error {
				res, err := cl.Register(ctx, c.String("name"), c.String("email"), password, c.String("role"))
				if err != nil {
					return fmt.Errorf("register: %w", err)
				}
				r.printAuth(res)
				return nil
			})
		},
	}
}

func (r *runner) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in and print a fresh access token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "login email", Required: true},
		},
		Action: func(c *cli.Context) error {
			password, err := r.password()
			if err != nil {
				return err
			}
			return r.call(c, func(ctx context.Context, cl client.Client) error {
				res, err := cl.Login(ctx, c.String("email"), password)
				if err != nil {
					return fmt.Errorf("login: %w", err)
				}
				r.printAuth(res)
				return nil
			})
		},
	}
}

func (r *runner) profileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "show the identity carried by a token",
		Flags: []cli.Flag{tokenFlag()},
		Action: func(c *cli.Context) error {
			return r.call(c, func(ctx context.Context, cl client.Client) error {
				cl.SetAccessToken(c.String("token"))
				p, err := cl.Profile(ctx)
				if err != nil {
					return fmt.Errorf("profile: %w", err)
				}
				fmt.Fprintln(r.out, p.Message)
				fmt.Fprintf(r.out, "email: %s\nrole: %s\n", p.Email, p.Role)
				return nil
			})
		},
	}
}

func (r *runner) adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "open the admin dashboard (ADMIN tokens only)",
		Flags: []cli.Flag{tokenFlag()},
		Action: func(c *cli.Context) error {
			return r.call(c, func(ctx context.Context, cl client.Client) error {
				cl.SetAccessToken(c.String("token"))
				d, err := cl.AdminDashboard(ctx)
				if err != nil {
					return fmt.Errorf("admin: %w", err)
				}
				fmt.Fprintln(r.out, d.Message)
				fmt.Fprintf(r.out, "admin: %s\n", d.AdminEmail)
				return nil
			})
		},
	}
}

func (r *runner) printAuth(res *client.AuthResult) {
	fmt.Fprintln(r.out, res.Message)
	fmt.Fprintf(r.out, "token: %s\n", res.Token)
}
