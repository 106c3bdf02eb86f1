package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/config"
)

// users binds browser-upload uuids to the chat that asked for them.
var users = map[string]int64{}
var bot *tgbotapi.BotAPI

func main() {
	fmt.Println("started")
	cfg := config.GetConfig()

	var err error
	bot, err = tgbotapi.NewBotAPI(cfg.TgToken)
	if err != nil {
		log.Fatal("tg error ", err)
	}
	fmt.Println("bot init")

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		tmpl := template.Must(template.ParseFiles("upload.html"))
		if err := tmpl.Execute(w, id); err != nil {
			http.Error(w, "Error rendering upload form", http.StatusInternalServerError)
		}
	})
	http.HandleFunc("/upload", handleUpload)

	log.Printf("Authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	go func() {
		fmt.Println("listen on:", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
			fmt.Println("Error starting server:", err)
			os.Exit(1)
		}
	}()

	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		log.Fatal("tg updates error ", err)
	}

	go func() {
		for {
			time.Sleep(time.Minute)
			for uid, created := range toDelete {
				if time.Now().After(created.Add(time.Hour)) {
					delete(users, uid)
					delete(toDelete, uid)
				}
			}
			removeOldFiles(cfg.UploadDir, time.Now().Add(-time.Hour*2))
		}
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		switch {
		case update.Message.Document != nil:
			go handleDocument(bot, update.Message)
		case update.Message.IsCommand():
			go handleCommand(bot, update)
		case update.Message.Text != "":
			go handleText(bot, update)
		}
	}
}

// removeOldFiles deletes uploads older than maxAge; sessions pointing at
// them will ask for a re-upload.
func removeOldFiles(dirPath string, maxAge time.Time) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())

		if file.IsDir() {
			if err := removeOldFiles(filePath, maxAge); err != nil {
				return err
			}
			continue
		}

		fileStat, err := os.Stat(filePath)
		if err != nil {
			return err
		}
		if fileStat.ModTime().Before(maxAge) {
			if err := os.Remove(filePath); err != nil {
				return err
			}
			fmt.Printf("Removed file: %s\n", filePath)
		}
	}
	return nil
}
