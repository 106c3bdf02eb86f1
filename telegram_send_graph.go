package main

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// Telegram recompresses photos; past this size a chart goes out as a
// document so the labels stay readable.
const maxSizePhoto = 150000

func sendGraphVisualization(api *tgbotapi.BotAPI, chatID int64, graph []byte, visualType, metricLabel string) {
	fileName := fmt.Sprintf("%s_%s.png", visualType, time.Now().Format("20060102-150405"))
	pngFile := tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: graph,
	}
	caption := generateVisualDescription(visualType, metricLabel)

	var msg tgbotapi.Chattable
	if len(graph) < maxSizePhoto {
		photoMsg := tgbotapi.NewPhotoUpload(chatID, pngFile)
		photoMsg.Caption = caption
		msg = photoMsg
	} else {
		docMsg := tgbotapi.NewDocumentUpload(chatID, pngFile)
		docMsg.Caption = caption
		msg = docMsg
	}

	if _, err := api.Send(msg); err != nil {
		log.Printf("Error sending %s visualization: %v", visualType, err)
		errMsg := tgbotapi.NewMessage(chatID,
			fmt.Sprintf("Could not send the %s chart. Error: %v", visualType, err))
		api.Send(errMsg)
	}
}

func generateVisualDescription(visualType, metricLabel string) string {
	switch visualType {
	case "bars":
		return fmt.Sprintf("Top subject terms, weighted by %s.", metricLabel)
	case "wordcloud":
		return fmt.Sprintf("Subject term cloud, weighted by %s.", metricLabel)
	}
	return "Subject term visualization"
}
