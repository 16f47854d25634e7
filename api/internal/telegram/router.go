package telegram

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"wyr-proxy/api/internal/llm"
	"wyr-proxy/api/internal/question"
	"wyr-proxy/api/internal/store"
)

type Router struct {
	Bot        *tgbotapi.BotAPI
	EngManager *llm.Manager
	Repo       *store.QuestionRepo // optional
}

func (r *Router) HandleUpdate(upd tgbotapi.Update, engines llm.Engines) {
	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery, engines)
		return
	}
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		switch upd.Message.Command() {
		case "start":
			r.sendCategoryPicker(cid)
		case "health":
			r.send(cid, "✅ OK")
		case "engine":
			r.handleEngineCommand(cid, upd.Message.Text, engines)
		case "mode":
			r.handleModeCommand(cid, upd.Message.Text)
		case "stats":
			r.handleStats(cid)
		default:
			r.send(cid, "Unknown command. Try /start")
		}
		return
	}

	// A free-typed message works as a category too; the category is an opaque
	// topic label, not a member of the keyboard's list.
	if txt := strings.TrimSpace(upd.Message.Text); txt != "" {
		r.askQuestion(cid, txt)
	}
}

// askQuestion runs the full pipeline for one chat: build prompt, invoke the
// chat's engine, normalize, deliver with vote buttons.
func (r *Router) askQuestion(chatID int64, category string) {
	engine := r.EngManager.Get(chatID)
	mode := getMode(chatID)

	pr := question.BuildPrompt(category, mode)
	raw, err := engine.Generate(context.Background(), pr)
	if err != nil {
		r.SendError(chatID, err)
		return
	}
	pair, tier := question.Normalize(raw, mode, question.DefaultPolicy)

	if r.Repo != nil {
		rec := store.QuestionRecord{
			Category: category,
			Engine:   engine.Name(),
			Model:    engine.GetModel(),
			Mode:     string(mode),
			Tier:     string(tier),
			RawText:  raw,
			OptionA:  pair.OptionA,
			OptionB:  pair.OptionB,
		}
		if err := r.Repo.Insert(context.Background(), rec); err != nil {
			log.Printf("telegram: store insert: %v", err)
		}
	}

	r.sendQuestion(chatID, category, pair)
}

// handleEngineCommand parses /engine and switches the chat's engine.
// Formats:
//
//	/engine gemini [model]
//	/engine gpt [model]
func (r *Router) handleEngineCommand(chatID int64, cmd string, engines llm.Engines) {
	args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(cmd, "/engine")))
	if len(args) == 0 {
		cur := r.EngManager.Get(chatID)
		r.send(chatID, "Current engine: "+cur.Name()+" ("+cur.GetModel()+")"+
			"\nUsage:\n/engine gemini [model]\n/engine gpt [model]")
		return
	}
	name := strings.ToLower(args[0])
	var modelArg string
	if len(args) > 1 {
		modelArg = strings.TrimSpace(args[1])
	}

	eng, err := engines.GetEngine(name)
	if err != nil {
		r.send(chatID, "Unknown engine. Available: gemini | gpt")
		return
	}

	// Some engines can switch their default model on the fly.
	type modelSetter interface{ SetModel(string) }
	if modelArg != "" {
		if ms, ok := any(eng).(modelSetter); ok {
			ms.SetModel(modelArg)
		}
	}
	r.EngManager.Set(chatID, eng)
	r.send(chatID, "✅ Engine: "+eng.Name()+" ("+eng.GetModel()+")")
}

func (r *Router) handleModeCommand(chatID int64, cmd string) {
	args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(cmd, "/mode")))
	if len(args) == 0 {
		r.send(chatID, "Current mode: "+string(getMode(chatID))+
			"\nUsage: /mode structured | /mode free")
		return
	}
	m := question.ParseMode(args[0])
	setMode(chatID, m)
	r.send(chatID, "✅ Mode: "+string(m))
}

func (r *Router) handleStats(chatID int64) {
	if r.Repo == nil {
		r.send(chatID, "Stats are not configured (no database).")
		return
	}
	counts, err := r.Repo.TierCounts(context.Background(), 7*24*time.Hour)
	if err != nil {
		r.send(chatID, fmt.Sprintf("Stats error: %v", err))
		return
	}
	if len(counts) == 0 {
		r.send(chatID, "No questions generated in the last 7 days.")
		return
	}
	tiers := make([]string, 0, len(counts))
	for t := range counts {
		tiers = append(tiers, t)
	}
	sort.Strings(tiers)

	var b strings.Builder
	b.WriteString("Normalization tiers, last 7 days:\n")
	for _, t := range tiers {
		fmt.Fprintf(&b, "%s: %d\n", t, counts[t])
	}
	r.send(chatID, b.String())
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = r.Bot.Send(msg)
}

func (r *Router) sendCategoryPicker(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Pick a category, or just type your own topic:")
	msg.ReplyMarkup = makeCategoryKeyboard()
	_, _ = r.Bot.Send(msg)
}

func (r *Router) sendQuestion(chatID int64, category string, pair question.Pair) {
	var b strings.Builder
	b.WriteString("🤔 Would you rather… (")
	b.WriteString(esc(category))
	b.WriteString(")\n\n")
	b.WriteString("🅰 ")
	b.WriteString(pair.OptionA)
	b.WriteString("\n\n🅱 ")
	b.WriteString(pair.OptionB)

	msg := tgbotapi.NewMessage(chatID, b.String())
	// The options may legitimately carry light markdown from the model.
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = makeVoteKeyboard()
	_, _ = r.Bot.Send(msg)
}

func (r *Router) SendError(chatID int64, err error) {
	r.send(chatID, fmt.Sprintf("Could not generate a question: %v", err))
}
