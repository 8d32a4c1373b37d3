package main

import (
	websocketPkg "ReminderBot/pkg/websocket"
	"bufio"
	"flag"
	"fmt"
	"os"
)

func main() {
	url := flag.String("url", "ws://localhost:3000/api/v1/chat/ws", "chat websocket URL")
	flag.Parse()

	client := websocketPkg.NewChatClient(*url)
	if err := client.Connect(); err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := client.Listen(func(text string) {
			fmt.Printf("< %s\n", text)
		}); err != nil {
			fmt.Fprintf(os.Stderr, "listen: %v\n", err)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := client.Send(line); err != nil {
			fmt.Fprintf(os.Stderr, "send: %v\n", err)
			break
		}
	}

	client.Close()
	<-done
}
