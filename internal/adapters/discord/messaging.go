package discord

import (
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"
)

// límite práctico por mensaje (Discord corta en 2000)
const maxChunk = 1900

// Defer efímero (para trabajos >3s)
func DeferEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("DeferEphemeral error: %v", err)
	}
	return err
}

func ReplyEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, content string, embeds ...*discordgo.MessageEmbed) {
	_, err := s.FollowupMessageCreate(ic.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Embeds:  embeds,
	})
	if err != nil {
		// Fallback sólo si todavía no hay respuesta (webhook desconocido)
		var reqErr *discordgo.RESTError
		if errors.As(err, &reqErr) && reqErr.Message != nil && reqErr.Message.Code == 10015 {
			_ = s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: content,
					Flags:   discordgo.MessageFlagsEphemeral,
					Embeds:  embeds,
				},
			})
			return
		}
		log.Printf("ReplyEphemeral error: %v", err)
	}
}

// ReplyChunked parte respuestas largas en varios follow-ups.
func ReplyChunked(s *discordgo.Session, ic *discordgo.InteractionCreate, content string) {
	for _, ch := range chunkMessage(content) {
		ReplyEphemeral(s, ic, ch)
	}
}

// chunkMessage corta por runas para no partir UTF-8 a la mitad.
func chunkMessage(msg string) []string {
	if len(msg) <= maxChunk {
		return []string{msg}
	}
	var out []string
	r := []rune(msg)
	for len(r) > 0 {
		n := maxChunk
		if n > len(r) {
			n = len(r)
		}
		out = append(out, string(r[:n]))
		r = r[n:]
	}
	return out
}
