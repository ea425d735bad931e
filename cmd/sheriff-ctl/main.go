package main

import (
	"fmt"
	"os"
	"strings"

	"sheriff/internal/ipc"
)

func usage() {
	fmt.Println("usage: sheriff-ctl <trigger|stop|status|say <text>|inject <file>>")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	msg := ipc.ControlMessage{Cmd: os.Args[1]}

	switch msg.Cmd {
	case "trigger", "stop", "status":
	case "say":
		if len(os.Args) < 3 {
			usage()
		}
		msg.Arg = strings.Join(os.Args[2:], " ")
	case "inject":
		if len(os.Args) != 3 {
			usage()
		}
		msg.Arg = os.Args[2]
	default:
		usage()
	}

	reply, err := ipc.Send(ipc.SocketPath, msg)
	if err != nil {
		fmt.Println("sheriff-daemon not running:", err)
		os.Exit(1)
	}

	if reply.Detail != "" {
		fmt.Println(reply.Detail)
	}
	if !reply.OK {
		os.Exit(1)
	}
}
