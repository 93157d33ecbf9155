package command

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-service"
	"golang.org/x/crypto/ssh"

	"github.com/pixil98/go-realms/internal/listener"
)

type ListenerType int

const (
	ListenerTypeTcp ListenerType = iota
	ListenerTypeSSH
	ListenerTypeWebsocket
)

var listenerTypeNames = map[string]ListenerType{
	"tcp":       ListenerTypeTcp,
	"ssh":       ListenerTypeSSH,
	"websocket": ListenerTypeWebsocket,
}

func (lt *ListenerType) UnmarshalText(text []byte) error {
	t, ok := listenerTypeNames[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown listener type: %s", text)
	}
	*lt = t
	return nil
}

// ListenerConfig describes one transport carrying the realms protocol.
// HostKeyPath only applies to ssh and Path only to websocket.
type ListenerConfig struct {
	Protocol    ListenerType `json:"protocol"`
	Port        uint16       `json:"port"`
	HostKeyPath string       `json:"host_key_path,omitempty"`
	Path        string       `json:"path,omitempty"`
}

func (cl *ListenerConfig) Validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}
	if cl.Protocol == ListenerTypeSSH && cl.HostKeyPath != "" {
		if _, err := os.Stat(cl.HostKeyPath); err != nil {
			el.Add(fmt.Errorf("host_key_path: %w", err))
		}
	}
	if cl.Protocol == ListenerTypeWebsocket && cl.Path != "" && !strings.HasPrefix(cl.Path, "/") {
		el.Add(fmt.Errorf("path must start with /"))
	}

	return el.Err()
}

func (cl *ListenerConfig) BuildListener(cm *listener.ConnectionManager) (service.Worker, error) {
	switch cl.Protocol {
	case ListenerTypeTcp:
		return listener.NewTcpListener(cl.Port, cm), nil
	case ListenerTypeWebsocket:
		return listener.NewWebsocketListener(cl.Port, cl.Path, cm), nil
	case ListenerTypeSSH:
		signer, err := cl.hostKey()
		if err != nil {
			return nil, fmt.Errorf("ssh host key: %w", err)
		}
		return listener.NewSshListener(cl.Port, cm, signer), nil
	}
	return nil, fmt.Errorf("unknown listener type: %v", cl.Protocol)
}

// hostKey reads the configured key or falls back to a throwaway ed25519 key.
// Clients will see a new fingerprint on every restart in the latter case.
func (cl *ListenerConfig) hostKey() (ssh.Signer, error) {
	if cl.HostKeyPath == "" {
		slog.Warn("ssh listener has no host_key_path, using an ephemeral key", "port", cl.Port)
		_, key, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, err
		}
		return ssh.NewSignerFromKey(key)
	}

	pem, err := os.ReadFile(cl.HostKeyPath)
	if err != nil {
		return nil, err
	}
	signer, err := ssh.ParsePrivateKey(pem)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", cl.HostKeyPath, err)
	}
	return signer, nil
}
