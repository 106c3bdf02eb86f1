package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/config"
)

// handleUpload accepts the browser upload form: the file plus the uuid that
// binds the upload back to a Telegram chat.
func handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	uid := r.FormValue("uuid")
	if uid == "" {
		http.Error(w, "Error getting uuid", http.StatusBadRequest)
		return
	}

	uploadDir := filepath.Join(config.GetConfig().UploadDir, uid)
	os.MkdirAll(uploadDir, 0755)
	filePath := filepath.Join(uploadDir, header.Filename)
	dst, err := os.Create(filePath)
	if err != nil {
		http.Error(w, "Error creating file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		http.Error(w, "Error saving file", http.StatusInternalServerError)
		return
	}

	chatID, ok := users[uid]
	if !ok {
		http.Error(w, "Unknown upload link, ask the bot for a fresh one", http.StatusBadRequest)
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Your file is uploaded, analyzing now.")
	bot.Send(msg)
	go registerUpload(bot, chatID, filePath)

	fmt.Fprintf(w, "File uploaded successfully")
}
