// Package bot is the Discord front: it parses prefix commands out of
// guild messages and dispatches them to the game service. All reply text
// is built here; the game layer never sees Discord types.
package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"slavemarket/internal/config"
	"slavemarket/internal/game"
	"slavemarket/internal/reset"
)

type Router struct {
	svc    *game.Service
	cycle  *reset.Cycle
	cfg    *config.Config
	prefix string
}

func NewRouter(svc *game.Service, cycle *reset.Cycle, cfg *config.Config) *Router {
	return &Router{svc: svc, cycle: cycle, cfg: cfg, prefix: cfg.CommandPrefix}
}

// Attach registers the message handler and the intents it needs.
func (r *Router) Attach(s *discordgo.Session) {
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent
	s.AddHandler(r.onMessage)
}

func (r *Router) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, r.prefix) {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(content, r.prefix))
	if len(fields) == 0 {
		return
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	defer func() {
		if rec := recover(); rec != nil {
			log.WithFields(log.Fields{"command": cmd, "panic": rec}).Error("command handler panicked")
			r.reply(s, m, "something went wrong, try again later")
		}
	}()

	// Group chats key records by guild; DMs fall back to the channel.
	groupID := m.GuildID
	if groupID == "" {
		groupID = m.ChannelID
	}

	reply := r.dispatch(cmd, args, groupID, m)
	if reply != "" {
		r.reply(s, m, reply)
	}
}

func (r *Router) reply(s *discordgo.Session, m *discordgo.MessageCreate, text string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, text, m.Reference()); err != nil {
		log.WithError(err).WithField("channel", m.ChannelID).Error("send reply failed")
	}
}

// displayName prefers the server nickname over the account name.
func displayName(m *discordgo.MessageCreate) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	if m.Author.GlobalName != "" {
		return m.Author.GlobalName
	}
	return m.Author.Username
}

// parseTarget resolves a command argument into a user ID. Accepts a
// Discord mention (<@id> or <@!id>), an @-prefixed ID or a bare ID.
func parseTarget(arg string) string {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "<@") && strings.HasSuffix(arg, ">") {
		arg = strings.TrimSuffix(strings.TrimPrefix(arg, "<@"), ">")
		arg = strings.TrimPrefix(arg, "!")
	}
	arg = strings.TrimPrefix(arg, "@")
	for _, c := range arg {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return arg
}

func argTarget(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return parseTarget(args[i])
}
