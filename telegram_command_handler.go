package main

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
	"github.com/kaypmayeTUL/checkout-data-subject-analysis/plot"
)

func handleCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	command := update.Message.Command()
	args := strings.TrimSpace(update.Message.CommandArguments())
	chatID := update.Message.Chat.ID

	switch command {
	case "start", "help":
		handleText(api, update)

	case "physical", "digital", "counter":
		kind, _ := models.ParseReportKind(command)
		handleKindSwitch(api, chatID, kind)

	case "filters":
		handleListFilters(api, chatID)

	case "filter":
		handleSetFilter(api, chatID, args)

	case "clearfilters":
		session := getSession(chatID)
		if session == nil {
			api.Send(tgbotapi.NewMessage(chatID, "Upload a CSV file first."))
			return
		}
		session.Selections = models.FilterSelections{}
		api.Send(tgbotapi.NewMessage(chatID, "All filters cleared, every value is selected again. Run /generate."))

	case "minlen":
		handleIntOption(api, chatID, args, "minimum term length", func(s *AnalysisSession, n int) {
			s.Options.MinTermLength = n
		})

	case "top":
		handleIntOption(api, chatID, args, "bar chart term count", func(s *AnalysisSession, n int) {
			s.Options.BarTerms = n
		})

	case "maxwords":
		handleIntOption(api, chatID, args, "word cloud size", func(s *AnalysisSession, n int) {
			s.Options.MaxTerms = n
		})

	case "colors":
		session := getSession(chatID)
		if session == nil {
			api.Send(tgbotapi.NewMessage(chatID, "Upload a CSV file first."))
			return
		}
		if !plot.ValidScheme(args) {
			api.Send(tgbotapi.NewMessage(chatID, "Unknown scheme. Available: "+strings.Join(plot.SchemeNames(), ", ")))
			return
		}
		session.Options.ColorScheme = args
		api.Send(tgbotapi.NewMessage(chatID, "Color scheme set to "+args+". Run /generate."))

	case "generate":
		go runAndSend(api, chatID)

	default:
		api.Send(tgbotapi.NewMessage(chatID,
			"Unknown command. Use /physical, /digital, /counter, /filters, /filter, /generate or /help."))
	}
}

func handleKindSwitch(api *tgbotapi.BotAPI, chatID int64, kind models.ReportKind) {
	session := getSession(chatID)
	if session == nil {
		api.Send(tgbotapi.NewMessage(chatID, "Report kind noted. Now upload a "+kind.Title()+" CSV."))
		setSession(chatID, &AnalysisSession{
			Kind:       kind,
			Selections: models.FilterSelections{},
			Options:    models.DefaultVizOptions(),
		})
		return
	}
	session.Kind = kind
	// filter keys differ between kinds, old selections make no sense
	session.Selections = models.FilterSelections{}
	if session.FilePath == "" {
		api.Send(tgbotapi.NewMessage(chatID, "Report kind set to "+kind.Title()+". Now upload the CSV."))
		return
	}
	api.Send(tgbotapi.NewMessage(chatID, "Re-analyzing as "+kind.Title()+"."))
	go runAndSend(api, chatID)
}

// handleListFilters shows the resolved filter keys of the current upload
// and their distinct values, the equivalent of the original sidebar
// multi-selects.
func handleListFilters(api *tgbotapi.BotAPI, chatID int64) {
	session := getSession(chatID)
	if session == nil || session.FilePath == "" {
		api.Send(tgbotapi.NewMessage(chatID, "Upload a CSV file first."))
		return
	}

	report, err := ReadUsageReport(session.FilePath)
	if err != nil {
		api.Send(tgbotapi.NewMessage(chatID, "Error reading file: "+err.Error()))
		return
	}
	schema, err := ResolveSchema(session.Kind, report.Headers)
	if err != nil {
		api.Send(tgbotapi.NewMessage(chatID, err.Error()))
		return
	}
	if len(schema.FilterKeys) == 0 {
		api.Send(tgbotapi.NewMessage(chatID, "No filter columns available in the uploaded data."))
		return
	}

	const maxListedValues = 25
	options := FilterOptions(report, schema)
	buf := &strings.Builder{}
	buf.WriteString("Available filters (AND logic between keys):\n")
	for _, key := range schema.FilterKeys {
		values := options[key]
		fmt.Fprintf(buf, "\n%s (column %q, %d values):\n", key, schema.FilterColumns[key], len(values))
		shown := values
		if len(shown) > maxListedValues {
			shown = shown[:maxListedValues]
		}
		buf.WriteString("  " + strings.Join(shown, ", "))
		if len(values) > maxListedValues {
			fmt.Fprintf(buf, ", ... (%d more)", len(values)-maxListedValues)
		}
		buf.WriteString("\n")
		if selected, ok := session.Selections[key]; ok {
			fmt.Fprintf(buf, "  currently selected: %s\n", strings.Join(selected, "; "))
		}
	}
	buf.WriteString("\nRestrict with: /filter Key = value1; value2")
	api.Send(tgbotapi.NewMessage(chatID, buf.String()))
}

// handleSetFilter parses "Key = value1; value2" and stores the accepted
// values for that logical key.
func handleSetFilter(api *tgbotapi.BotAPI, chatID int64, args string) {
	session := getSession(chatID)
	if session == nil || session.FilePath == "" {
		api.Send(tgbotapi.NewMessage(chatID, "Upload a CSV file first."))
		return
	}

	parts := strings.SplitN(args, "=", 2)
	if len(parts) != 2 {
		api.Send(tgbotapi.NewMessage(chatID, "Expected: /filter Key = value1; value2"))
		return
	}
	key := strings.TrimSpace(parts[0])
	var values []string
	for _, v := range strings.Split(parts[1], ";") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if key == "" || len(values) == 0 {
		api.Send(tgbotapi.NewMessage(chatID, "Expected: /filter Key = value1; value2"))
		return
	}

	session.Selections[key] = values
	api.Send(tgbotapi.NewMessage(chatID,
		fmt.Sprintf("%s restricted to %d value(s). Run /generate, or adjust more filters first.", key, len(values))))
}

func handleIntOption(api *tgbotapi.BotAPI, chatID int64, args, name string, set func(*AnalysisSession, int)) {
	session := getSession(chatID)
	if session == nil {
		api.Send(tgbotapi.NewMessage(chatID, "Upload a CSV file first."))
		return
	}
	n, err := strconv.Atoi(args)
	if err != nil || n < 1 {
		api.Send(tgbotapi.NewMessage(chatID, "Give a positive number, e.g. /minlen 3"))
		return
	}
	set(session, n)
	api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Set %s to %d. Run /generate.", name, n)))
}
