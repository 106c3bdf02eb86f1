package main

import (
	"errors"
	"html"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	uuid "github.com/satori/go.uuid"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/config"
	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
	"github.com/kaypmayeTUL/checkout-data-subject-analysis/plot"
)

// AnalysisSession is the per-chat state between an upload and the next one:
// the file on disk, the chosen report kind, the filter selections and the
// visualization options. A new upload replaces the whole session, which is
// also how a run is "cancelled".
type AnalysisSession struct {
	FilePath   string
	Kind       models.ReportKind
	Selections models.FilterSelections
	Options    models.VizOptions
}

var (
	sessionsMu sync.Mutex
	sessions   = map[int64]*AnalysisSession{}
)

var toDelete = map[string]time.Time{}

func getSession(chatID int64) *AnalysisSession {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	return sessions[chatID]
}

func setSession(chatID int64, s *AnalysisSession) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	sessions[chatID] = s
}

const helpText = `Library Collection Use/Subject Analyzer.

Upload a usage CSV (physical circulation, digital repository or COUNTER export, gzip/lz4/zip archives work too) and I will build a weighted subject term analysis: frequency table, word cloud and bar chart.

Pick the data type first:
/physical - circulation exports (Loans, Checkouts)
/digital - digital collection logs (Downloads, Views)
/counter - COUNTER e-resource reports

After the upload:
/filters - show filterable columns and their values
/filter Key = value1; value2 - restrict one filter key
/clearfilters - select everything again
/minlen N, /top N, /maxwords N, /colors scheme - display settings
/generate - re-run with the current selections`

func handleText(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	message := update.Message

	uid := uuid.NewV4()
	users[uid.String()] = message.Chat.ID
	toDelete[uid.String()] = time.Now()

	msg := tgbotapi.NewMessage(message.Chat.ID,
		helpText+"\n\nOr upload via browser: "+config.GetConfig().PublicURL+"/?id="+uid.String())
	if _, err := bot.Send(msg); err != nil {
		log.Printf("Error sending help: %v", err)
	}
}

func handleDocument(bot *tgbotapi.BotAPI, message *tgbotapi.Message) {
	fileURL, err := bot.GetFileDirectURL(message.Document.FileID)
	if err != nil {
		log.Printf("Error getting file URL: %v", err)
		uid := uuid.NewV4()
		users[uid.String()] = message.Chat.ID
		toDelete[uid.String()] = time.Now()
		msg := tgbotapi.NewMessage(message.Chat.ID,
			"Error on upload, if the file is too big use this link instead: "+config.GetConfig().PublicURL+"/?id="+uid.String())
		bot.Send(msg)
		return
	}

	filePath := filepath.Join(config.GetConfig().UploadDir, strconv.Itoa(message.From.ID), message.Document.FileName)
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		log.Printf("Error creating directory: %v", err)
		return
	}
	resp, err := http.Get(fileURL)
	if err != nil {
		log.Printf("Error downloading file: %v", err)
		return
	}
	defer resp.Body.Close()
	file, err := os.Create(filePath)
	if err != nil {
		log.Printf("Error creating file: %v", err)
		return
	}
	defer file.Close()
	if _, err = io.Copy(file, resp.Body); err != nil {
		log.Printf("Error writing file: %v", err)
		return
	}

	go registerUpload(bot, message.Chat.ID, filePath)
}

// registerUpload unpacks a fresh upload, starts a new session for the chat
// (keeping the previously chosen kind and display options, dropping the
// filter selections which belong to the old data) and runs the analysis.
func registerUpload(bot *tgbotapi.BotAPI, chatID int64, filePath string) {
	unpackedPath, err := unpackArchive(filePath)
	if err != nil {
		log.Printf("Error unpacking file: %v", err)
		bot.Send(tgbotapi.NewMessage(chatID, "Could not unpack the archive: "+err.Error()))
		return
	}
	if unpackedPath != "" {
		filePath = unpackedPath
	}

	session := &AnalysisSession{
		FilePath:   filePath,
		Kind:       models.ReportPhysical,
		Selections: models.FilterSelections{},
		Options:    models.DefaultVizOptions(),
	}
	if prev := getSession(chatID); prev != nil {
		session.Kind = prev.Kind
		session.Options = prev.Options
	}
	setSession(chatID, session)

	bot.Send(tgbotapi.NewMessage(chatID,
		"File received, analyzing as "+session.Kind.Title()+". Switch with /physical, /digital or /counter."))
	runAndSend(bot, chatID)
}

// runAndSend executes one analysis run for the chat's session and reports
// either the results or the terminal condition. Every condition leaves the
// session usable for new selections or a new upload.
func runAndSend(bot *tgbotapi.BotAPI, chatID int64) {
	session := getSession(chatID)
	if session == nil {
		bot.Send(tgbotapi.NewMessage(chatID, "Upload a CSV file first."))
		return
	}

	report, err := ReadUsageReport(session.FilePath)
	if err != nil {
		if errors.Is(err, models.ErrSubjectsColumnMissing) {
			bot.Send(tgbotapi.NewMessage(chatID, "CSV must contain a 'Subjects' column (terms separated by semicolons)."))
			return
		}
		log.Printf("Error reading report: %v", err)
		bot.Send(tgbotapi.NewMessage(chatID, "Error reading file: "+err.Error()))
		return
	}

	result, err := Analyze(AnalysisRequest{
		Report:     report,
		Kind:       session.Kind,
		Selections: session.Selections,
		Options:    session.Options,
	})
	switch {
	case errors.Is(err, models.ErrEmptyFilterResult):
		bot.Send(tgbotapi.NewMessage(chatID, "No data found for the selected filter combination. Adjust the selection (/filters) and /generate again."))
		return
	case errors.Is(err, models.ErrNoSubjectTerms):
		bot.Send(tgbotapi.NewMessage(chatID, "No subject data found for this selection. The Subjects column appears to be empty."))
		return
	case err != nil:
		log.Printf("Error analyzing: %v", err)
		bot.Send(tgbotapi.NewMessage(chatID, "Analysis failed: "+err.Error()))
		return
	}

	sendResults(bot, chatID, result)
	logAnalysisRun(chatID, result)
}

func sendResults(bot *tgbotapi.BotAPI, chatID int64, result *models.AnalysisResult) {
	bot.Send(tgbotapi.NewMessage(chatID, GenerateSummaryMsg(result)))

	view := result.Table.WithMinLength(result.Options.MinTermLength)
	if len(view) == 0 {
		bot.Send(tgbotapi.NewMessage(chatID,
			"All terms are shorter than the minimum length, lower it with /minlen."))
		return
	}

	tableMsg := tgbotapi.NewMessage(chatID, "<pre>\n"+html.EscapeString(GenerateFrequencyTable(view.TopN(40)))+"\n</pre>")
	tableMsg.ParseMode = tgbotapi.ModeHTML
	bot.Send(tableMsg)

	safeTitle := SafeFileName(result.Title())
	stamp := time.Now().Format("20060102-150405")

	csvData := tgbotapi.FileBytes{
		Name:  "frequencies_" + safeTitle + "_" + stamp + ".csv",
		Bytes: []byte(GenerateFrequencyCSV(view)),
	}
	csvMsg := tgbotapi.NewDocumentUpload(chatID, csvData)
	csvMsg.Caption = "Complete frequency table"
	bot.Send(csvMsg)

	cloud, err := plot.RenderWordCloud(view, result.Title(), result.MetricLabel, result.Options.ColorScheme, result.Options.MaxTerms)
	if err != nil {
		log.Printf("Error rendering word cloud: %v", err)
	} else {
		cloudData := tgbotapi.FileBytes{Name: "wordcloud_" + safeTitle + "_" + stamp + ".html", Bytes: cloud}
		cloudMsg := tgbotapi.NewDocumentUpload(chatID, cloudData)
		cloudMsg.Caption = "Word cloud (open in a browser), weighted by " + result.MetricLabel
		bot.Send(cloudMsg)
	}

	// bar charts get unreadable past a couple dozen labels
	barTerms := result.Options.BarTerms
	if barTerms <= 0 {
		barTerms = 20
	}
	bars, err := plot.DrawTermBars(view.TopN(barTerms), "Top Subject Terms - "+result.Title(), result.MetricLabel)
	if err != nil {
		log.Printf("Error rendering bar chart: %v", err)
		return
	}
	sendGraphVisualization(bot, chatID, bars, "bars", result.MetricLabel)
}
