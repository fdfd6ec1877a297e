package bot

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/chatbotbro/backend/internal/ai"
)

const personaPrompt = `You are a friendly Indian boy best friend chatbot named "ChatBot Bro".
You respond in Hinglish (Hindi-English mix) with lots of personality.
Keep responses brief (1-2 sentences max), casual, and friendly.
Use phrases like "Bro", "Yaar", "Bilkul", "Arre", etc.
Be enthusiastic and supportive like a best friend would be.

User said: %s

Respond as the ChatBot Bro character:`

var personalityResponses = map[string][]string{
	"greeting": {
		"Yo bro! Kya haal hai? Ready to chat?",
		"Arre yaar! Welcome back buddy! Kaise ho?",
		"Haan bhai! Main yaha hoon, bolna na!",
	},
	"default": {
		"Bilkul bro! Main samajh gaya.",
		"Haan haan, bilkul samjha!",
		"Arre yaar, suno to, samajh aa gaya!",
		"Bilkul buddy, main ready hoon!",
	},
	"goodbye": {
		"Bye yaar! Fir se baatein karte hain!",
		"Thik hai buddy, fir milenge!",
		"Chalo bro, goodbye! Stay awesome!",
	},
}

// rules are checked in order; the first category with a matching keyword wins.
var rules = []struct {
	keywords []string
	respond  func(r *Responder, input string) string
}{
	{
		keywords: []string{"hi", "hello", "hey", "namaste", "kya haal"},
		respond:  func(r *Responder, _ string) string { return r.pick("greeting") },
	},
	{
		keywords: []string{"bye", "goodbye", "see you", "take care"},
		respond:  func(r *Responder, _ string) string { return r.pick("goodbye") },
	},
	{
		keywords: []string{"thanks", "thank you", "dhanyavaad", "shukriya"},
		respond:  canned("Arre yaar, koi baat nahi! Always here for you bro! 🙌"),
	},
	{
		keywords: []string{"how are you", "kaise ho", "how u", "kaisa hai"},
		respond:  canned("Main bilkul sahi hoon bro! Aur tu? Kaise hai?"),
	},
	{
		keywords: []string{"your name", "naam", "who are you", "kaun ho"},
		respond:  canned("Yaar, main tera best friend ChatBot Bro hoon! Hamesha tere liye available! 😎"),
	},
	{
		keywords: []string{"help", "madad", "problem", "issue"},
		respond:  canned("Arre bhai, main yaha hoon na! Kya problem hai? Bataa, main solve kar dunga! 💪"),
	},
	{
		keywords: []string{"love", "like", "awesome", "great", "fantastic"},
		respond:  canned("Haan bro, bilkul! Mujhe bhi tera friendship bohot pasand hai! 🤝"),
	},
}

func canned(s string) func(*Responder, string) string {
	return func(*Responder, string) string { return s }
}

// Responder turns user text into a bot reply. When a provider is configured it
// is tried first; any provider failure or empty result falls back to the
// keyword-matched canned phrases and never reaches the caller.
type Responder struct {
	provider ai.Provider // nil when generation is disabled
}

func NewResponder(provider ai.Provider) *Responder {
	return &Responder{provider: provider}
}

func (r *Responder) Reply(ctx context.Context, userText string) string {
	if r.provider != nil {
		reply, err := r.provider.Chat(ctx, fmt.Sprintf(personaPrompt, userText))
		if err != nil {
			log.Printf("gemini generate failed, falling back: %v", err)
		} else if reply = strings.TrimSpace(reply); reply != "" {
			return reply
		}
	}

	lower := strings.ToLower(userText)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.respond(r, userText)
			}
		}
	}
	return fmt.Sprintf("Haan bro, bilkul samajh gaya! '%s' - bilkul sahi kaha tune! Aur kya bolna?", userText)
}

func (r *Responder) pick(category string) string {
	phrases, ok := personalityResponses[category]
	if !ok {
		phrases = personalityResponses["default"]
	}
	return phrases[rand.Intn(len(phrases))]
}
