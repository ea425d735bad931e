package ipc

import (
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "test.sock")

	closeFn, err := StartServer(sock, func(msg ControlMessage) Reply {
		if msg.Cmd == "say" {
			return Reply{OK: true, Detail: "saying: " + msg.Arg}
		}
		return Reply{OK: false, Detail: "unknown command: " + msg.Cmd}
	})
	if err != nil {
		t.Fatalf("StartServer: %v", err)
	}
	defer closeFn()

	reply, err := Send(sock, ControlMessage{Cmd: "say", Arg: "hello"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !reply.OK || reply.Detail != "saying: hello" {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	reply, err = Send(sock, ControlMessage{Cmd: "dance"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.OK {
		t.Fatalf("unknown command should not be ok: %+v", reply)
	}
}

func TestSendNoServer(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "missing.sock")
	if _, err := Send(sock, ControlMessage{Cmd: "status"}); err == nil {
		t.Fatalf("expected dial error")
	}
}

func TestServerReplacesStaleSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "stale.sock")

	closeFn, err := StartServer(sock, func(ControlMessage) Reply { return Reply{OK: true} })
	if err != nil {
		t.Fatalf("first StartServer: %v", err)
	}
	closeFn()

	// a crashed daemon leaves the socket file behind
	closeFn, err = StartServer(sock, func(ControlMessage) Reply { return Reply{OK: true, Detail: "second"} })
	if err != nil {
		t.Fatalf("second StartServer: %v", err)
	}
	defer closeFn()

	reply, err := Send(sock, ControlMessage{Cmd: "status"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Detail != "second" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}
