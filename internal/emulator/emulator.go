// Package emulator provides a fake sensor host for tests and local
// development: an SSH server that answers `sensors -j` with generated
// temperature and humidity readings, so the full check pipeline can be
// exercised without real hardware.
package emulator

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/crypto/ssh"
)

// SensorsCommand is the one command the emulator answers with data.
const SensorsCommand = "sensors -j"

// Config describes an emulator instance.
type Config struct {
	Addr     string // TCP listen address, e.g. ":2222" or "127.0.0.1:0"
	User     string
	Password string
	NumTemps int
	NumHums  int
	Seed     int64 // 0 means time-based
}

// Server is a minimal SSH server speaking just enough of the protocol
// for one exec request per session.
type Server struct {
	cfg      Config
	sshCfg   *ssh.ServerConfig
	listener net.Listener
	gen      *Generator
}

// NewServer builds a server with a fresh ed25519 host key.
func NewServer(cfg Config) (*Server, error) {
	sshCfg := &ssh.ServerConfig{
		PasswordCallback: func(meta ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if meta.User() == cfg.User && string(pass) == cfg.Password {
				return nil, nil
			}
			return nil, fmt.Errorf("unknown user or wrong password for %q", meta.User())
		},
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := ssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("host key signer: %w", err)
	}
	sshCfg.AddHostKey(signer)

	return &Server{
		cfg:    cfg,
		sshCfg: sshCfg,
		gen:    NewGenerator(cfg.NumTemps, cfg.NumHums, cfg.Seed),
	}, nil
}

// Listen binds the TCP listener. Addr is resolvable afterwards, which
// matters when listening on port 0.
func (s *Server) Listen() error {
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	s.listener = l
	return nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until the listener closes.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go s.handleConn(conn)
	}
}

// Close shuts the listener down; in-flight sessions finish on their own.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, s.sshCfg)
	if err != nil {
		slog.Debug("ssh handshake failed", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()
	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "only sessions are supported")
			continue
		}
		ch, chReqs, err := newChan.Accept()
		if err != nil {
			slog.Debug("channel accept failed", "error", err)
			continue
		}
		go s.handleSession(ch, chReqs)
	}
}

type execPayload struct {
	Command string
}

type exitPayload struct {
	Status uint32
}

func (s *Server) handleSession(ch ssh.Channel, reqs <-chan *ssh.Request) {
	defer ch.Close()

	for req := range reqs {
		if req.Type != "exec" {
			req.Reply(false, nil)
			continue
		}

		var payload execPayload
		if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
			req.Reply(false, nil)
			continue
		}
		req.Reply(true, nil)

		var status uint32
		if payload.Command == SensorsCommand {
			report, err := s.gen.Report()
			if err != nil {
				slog.Error("report generation failed", "error", err)
				status = 1
			} else {
				ch.Write(report)
				ch.Write([]byte("\n"))
			}
		} else {
			fmt.Fprintf(ch.Stderr(), "%s: command not found\n", payload.Command)
			status = 127
		}

		ch.SendRequest("exit-status", false, ssh.Marshal(exitPayload{Status: status}))
		return
	}
}
