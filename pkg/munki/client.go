// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package munki talks to the Munki agent and the logged in user's session.
package munki

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultStatPath                  = "/usr/bin/stat"
	DefaultSuPath                    = "/usr/bin/su"
	DefaultManagedSoftwareUpdatePath = "/usr/local/munki/managedsoftwareupdate"

	// UpdatesURL opens the Updates tab of Managed Software Center.
	UpdatesURL = "munki://updates"
)

// DefaultIgnoredUsers are console owners that have no GUI session worth opening.
var DefaultIgnoredUsers = []string{"root", "", "_mbsetupuser"}

// ErrConsoleUser marks a failed console user lookup.
var ErrConsoleUser = errors.Base("unable to determine currently logged in user")

// DetailURL opens the detail page of item in Managed Software Center.
func DetailURL(item string) string {
	return "munki://detail-" + item + ".html"
}

// 🔧 Options configures a Client
type Options struct {
	StatPath                  string
	SuPath                    string
	ManagedSoftwareUpdatePath string
	IgnoredUsers              []string // exact names or doublestar patterns
	Runner                    CommandRunner
}

// 🎮 Client drives Munki on the local machine
type Client struct {
	opts Options
}

// 🏭 NewClient fills unset options with defaults.
func NewClient(opts Options) (*Client, error) {
	if opts.StatPath == "" {
		opts.StatPath = DefaultStatPath
	}
	if opts.SuPath == "" {
		opts.SuPath = DefaultSuPath
	}
	if opts.ManagedSoftwareUpdatePath == "" {
		opts.ManagedSoftwareUpdatePath = DefaultManagedSoftwareUpdatePath
	}
	if opts.IgnoredUsers == nil {
		opts.IgnoredUsers = DefaultIgnoredUsers
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	for _, pattern := range opts.IgnoredUsers {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignored user pattern %q", pattern)
		}
	}
	return &Client{opts: opts}, nil
}

// 🔍 ConsoleUser returns the owner of /dev/console.
func (c *Client) ConsoleUser(ctx context.Context) (string, error) {
	stdout, stderr, err := c.opts.Runner.Output(ctx, c.opts.StatPath, "-f%Su", "/dev/console")
	if err != nil {
		return "", errors.Errorf("%w: %s", ErrConsoleUser, err.Error())
	}
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return "", errors.Errorf("%w: %s", ErrConsoleUser, msg)
	}

	user := strings.TrimSpace(string(stdout))
	zerolog.Ctx(ctx).Debug().Str("user", user).Msg("found console user")
	return user, nil
}

// IsIgnoredUser reports whether no session should be opened for user.
func (c *Client) IsIgnoredUser(user string) bool {
	for _, pattern := range c.opts.IgnoredUsers {
		if pattern == "" || user == "" {
			if pattern == user {
				return true
			}
			continue
		}
		if matched, err := doublestar.Match(pattern, user); err == nil && matched {
			return true
		}
	}
	return false
}

// 🖥️ OpenInSession opens url as user, inside that user's login session.
func (c *Client) OpenInSession(ctx context.Context, user, url string) error {
	if user == "" {
		return errors.New("user is required")
	}
	if err := c.opts.Runner.Run(ctx, c.opts.SuPath, "-l", user, "-c", "open "+shellQuote(url)); err != nil {
		return errors.Errorf("opening %s for %s: %w", url, user, err)
	}
	return nil
}

// shellQuote makes s a single word for the login shell su starts.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ⚡ AutoRun starts a background managedsoftwareupdate run.
func (c *Client) AutoRun(ctx context.Context) error {
	if err := c.opts.Runner.Run(ctx, c.opts.ManagedSoftwareUpdatePath, "--auto"); err != nil {
		return errors.Errorf("running managedsoftwareupdate: %w", err)
	}
	return nil
}
