package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"cardscan/api/internal/ocr"
	"cardscan/api/internal/ocr/types"
	"cardscan/api/internal/util"
	"cardscan/api/internal/vcard"
)

// Bot is the part of *tgbotapi.BotAPI the router needs.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Scanner interface {
	Scan(ctx context.Context, img types.EncodedImage) (types.ContactRecord, error)
}

type Router struct {
	Bot      Bot
	Scanner  Scanner
	Region   string
	Log      *zap.Logger
	Download func(ctx context.Context, url string) ([]byte, error)
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message
	cid := msg.Chat.ID

	if msg.IsCommand() {
		r.HandleCommand(msg)
		return
	}

	fileID := ""
	switch {
	case len(msg.Photo) > 0:
		// largest size is last
		fileID = msg.Photo[len(msg.Photo)-1].FileID
	case msg.Document != nil && util.IsImageContentType(msg.Document.MimeType):
		fileID = msg.Document.FileID
	case msg.Document != nil:
		r.send(cid, textNotImage)
		return
	default:
		r.send(cid, textHelp)
		return
	}
	r.acceptPhoto(ctx, cid, fileID)
}

func (r *Router) HandleCommand(msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	switch msg.Command() {
	case "start", "help":
		r.send(cid, textHelp)
	case "health":
		r.send(cid, "✅ OK")
	default:
		r.send(cid, "Unknown command. Try /help")
	}
}

func (r *Router) acceptPhoto(ctx context.Context, cid int64, fileID string) {
	r.send(cid, textAccepted)

	url, err := r.Bot.GetFileDirectURL(fileID)
	if err != nil {
		r.SendError(cid, fmt.Errorf("get file: %w", err))
		return
	}
	download := r.Download
	if download == nil {
		download = httpDownload
	}
	data, err := download(ctx, url)
	if err != nil {
		r.SendError(cid, fmt.Errorf("download: %w", err))
		return
	}

	img, err := util.EncodeImage(data)
	if err != nil {
		r.send(cid, "Invalid image format")
		return
	}

	rec, err := r.Scanner.Scan(ctx, img)
	if err != nil {
		if ocr.KindOf(err) == ocr.KindValidation {
			r.send(cid, err.Error())
			return
		}
		r.SendError(cid, err)
		return
	}

	r.send(cid, formatContact(rec))
	if strings.TrimSpace(rec.Name) == "" {
		r.send(cid, textNoName)
		return
	}
	doc := tgbotapi.NewDocument(cid, tgbotapi.FileBytes{
		Name:  vcard.Filename(rec.Name),
		Bytes: []byte(vcard.Serialize(rec, r.Region)),
	})
	if _, err := r.Bot.Send(doc); err != nil {
		r.logger().Warn("send vcard failed", zap.Int64("chat_id", cid), zap.Error(err))
	}
}

func (r *Router) send(chatID int64, text string) {
	if _, err := r.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.logger().Warn("send message failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) SendError(chatID int64, err error) {
	r.logger().Error("card processing failed", zap.Int64("chat_id", chatID), zap.Error(err))
	r.send(chatID, "⚠️ "+err.Error())
}

func (r *Router) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}
