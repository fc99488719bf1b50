package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	qrcode "github.com/skip2/go-qrcode"
)

// qrgen renders a qPay QR payload into a PNG so client flows can be
// exercised against a sandbox without a merchant terminal.
func main() {
	out := flag.String("o", "qr.png", "output PNG file")
	size := flag.Int("size", 256, "image size in pixels")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: qrgen [-o qr.png] [-size 256] <payload>")
		os.Exit(2)
	}

	if err := qrcode.WriteFile(flag.Arg(0), qrcode.Medium, *size, *out); err != nil {
		log.Fatalf("Error writing QR code: %v", err)
	}
	fmt.Printf("wrote %s\n", *out)
}
