package shell

import (
	"strings"

	"github.com/josephlewis42/minish/core/vos"
)

const (
	EnvHome     = "HOME"
	EnvPWD      = "PWD"
	EnvHostname = "HOSTNAME"
	EnvUser     = "USER"

	DefaultPrompt = "$ "
)

// ExpandPrompt fills in the escapes of a prompt template from the
// environment:
//
//	\u  the user name
//	\h  the host name
//	\w  the working directory, with the home directory shortened to ~
//	\$  # for the superuser, $ otherwise
//	\\  a backslash
func ExpandPrompt(template string, env vos.VEnv, uid int) string {
	pwd := shortenHome(env.Getenv(EnvPWD), env.Getenv(EnvHome))

	dollar := "$"
	if uid == 0 {
		dollar = "#"
	}

	return strings.NewReplacer(
		`\\`, `\`,
		`\u`, env.Getenv(EnvUser),
		`\h`, env.Getenv(EnvHostname),
		`\w`, pwd,
		`\$`, dollar,
	).Replace(template)
}

// shortenHome replaces a leading home directory in dir with ~. Only whole
// path components match, and a home of / is never shortened.
func shortenHome(dir, home string) string {
	home = strings.TrimSuffix(home, "/")
	if home == "" {
		return dir
	}

	switch {
	case dir == home:
		return "~"
	case strings.HasPrefix(dir, home+"/"):
		return "~" + strings.TrimPrefix(dir, home)
	default:
		return dir
	}
}
