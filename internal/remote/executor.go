// Package remote runs a single diagnostic command on a remote host
// over SSH. One connection, one session, one command, no retries;
// retry policy belongs to whatever schedules the check.
package remote

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
)

// DefaultTimeout bounds dial plus handshake when no timeout is set.
const DefaultTimeout = 10 * time.Second

// Executor runs one command on a remote host and returns its stdout.
// Any failure is a transport-class error; the caller decides what that
// means for the run.
type Executor interface {
	Run(ctx context.Context, cmd string) (string, error)
}

// Options configures a single SSH exchange. KeyFile wins over Password
// when both are set.
type Options struct {
	Host     string
	Port     int // 0 means 22
	User     string
	Password string
	KeyFile  string        // path to a PEM-encoded private key
	Timeout  time.Duration // 0 means DefaultTimeout
}

// SSHExecutor is the x/crypto/ssh implementation of Executor.
type SSHExecutor struct {
	opts Options
}

func NewSSHExecutor(opts Options) *SSHExecutor {
	if opts.Port == 0 {
		opts.Port = 22
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	return &SSHExecutor{opts: opts}
}

// Run opens an authenticated session, executes cmd, and returns its
// stdout. The configured timeout bounds the whole exchange: dial,
// handshake, and command, so a host that accepts TCP and then goes
// silent cannot hang the check.
func (e *SSHExecutor) Run(ctx context.Context, cmd string) (string, error) {
	cfg, err := e.clientConfig()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	addr := net.JoinHostPort(e.opts.Host, strconv.Itoa(e.opts.Port))
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", addr, err)
	}

	// The ssh package stops consulting the context after the dial, so
	// a connection deadline has to bound the handshake and the command.
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		conn.Close()
		return "", fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}
	client := ssh.NewClient(sshConn, chans, reqs)
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("open session: %w", err)
	}
	defer session.Close()

	out, err := session.Output(cmd)
	if err != nil {
		return "", fmt.Errorf("run %q: %w", cmd, err)
	}
	return string(out), nil
}

func (e *SSHExecutor) clientConfig() (*ssh.ClientConfig, error) {
	var auth []ssh.AuthMethod
	if e.opts.KeyFile != "" {
		pem, err := os.ReadFile(e.opts.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("read key file: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(pem)
		if err != nil {
			return nil, fmt.Errorf("parse key file: %w", err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	} else {
		auth = append(auth, ssh.Password(e.opts.Password))
	}

	return &ssh.ClientConfig{
		User: e.opts.User,
		Auth: auth,
		// A one-shot check carries no host key store; accept whatever
		// the target presents.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         e.opts.Timeout,
	}, nil
}
