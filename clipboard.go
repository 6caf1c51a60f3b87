//go:build !js && (windows || cgo)

package main

import (
	"log"
	"unicode/utf8"

	"golang.design/x/clipboard"
)

var clipboardReady bool

func InitClipboard() {
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard: disabled: %v", err)
		return
	}
	clipboardReady = true
}

func ClipboardWriteText(str string) {
	if clipboardReady && utf8.ValidString(str) {
		clipboard.Write(clipboard.FmtText, []byte(str))
	}
}
