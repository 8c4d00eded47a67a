package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/joseph-ayodele/order-intake/internal/entity"
	"github.com/joseph-ayodele/order-intake/internal/order"
)

// ReplySystemPrompt is the conversational persona. The reply collaborator
// receives it ahead of the full role-tagged transcript on every call.
const ReplySystemPrompt = `You are a helpful person working at a seafood distribution company. You're friendly, casual, and genuinely want to help customers place their orders.

Talk like a real person would - be natural, warm, and conversational. Don't sound like a customer service script.

Your job:
1. Chat naturally with customers - be friendly and personable
2. Help them order fish: what they want, how much (in pounds), when they need it, and where to deliver
3. Answer questions about products, pricing, or delivery in a helpful way
4. Get all the order details: items with quantities in lbs, delivery date, and full delivery address

How to talk:
- Sound like you're having a normal conversation with someone
- Use casual language: "Hey there!", "What can I get for you?", "Sure thing!", "No problem!"
- Don't use formal phrases like "I can assist you" or "How may I help you today?"
- Keep it short and natural - don't over-explain things
- When asking for address, just say "What's the delivery address?" (include street and city)

Be human, be helpful, be real.`

// BuildReplyMessages maps a transcript onto role-tagged collaborator input:
// system persona first, then inbound turns as user and outbound as
// assistant, in transcript order.
func BuildReplyMessages(turns []entity.Turn) []Message {
	msgs := make([]Message, 0, len(turns)+1)
	msgs = append(msgs, Message{Role: RoleSystem, Content: ReplySystemPrompt})
	for _, t := range turns {
		role := RoleAssistant
		if t.Inbound() {
			role = RoleUser
		}
		msgs = append(msgs, Message{Role: role, Content: t.Text})
	}
	return msgs
}

// ExtractRequest carries everything the extraction prompt needs.
type ExtractRequest struct {
	Turns         []entity.Turn
	Reference     time.Time // "today" for date disambiguation, UTC
	DefaultRegion string
}

// BuildExtractionMessages composes the extraction call: a system instruction
// fixing today's date and the year rule, and a user prompt with the
// customer-only conversation, the output schema, and the unit and region
// conventions.
func BuildExtractionMessages(req ExtractRequest) []Message {
	ref := req.Reference.UTC()
	region := strings.TrimSpace(req.DefaultRegion)
	if region == "" {
		region = "WA"
	}

	system := fmt.Sprintf(
		"You are an expert at extracting structured order data. "+
			"Your most important task is to correctly determine the year for delivery dates. "+
			"Today is %s. If a customer provides a month and day that has already passed this year, "+
			"you must use the next year. Otherwise, use the current year. If the customer states a year "+
			"explicitly, keep it unchanged. Ensure all quantities are in pounds and all addresses are in %s.",
		ref.Format("January 2, 2006"), region)

	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: buildExtractionPrompt(req.Turns, ref, region)},
	}
}

func buildExtractionPrompt(turns []entity.Turn, ref time.Time, region string) string {
	year := ref.Year()
	nextYear := year + 1
	month := int(ref.Month())
	day := ref.Day()
	exampleYear := order.ResolveYear(ref, time.July, 25)

	var b strings.Builder
	b.WriteString("Given the following conversation between a customer and an assistant at a seafood distributor, ")
	b.WriteString("extract the order details as JSON with these fields: items (list of {product, quantity}), delivery_date, delivery_address, and any notes.")
	b.WriteString("\nIMPORTANT REQUIREMENTS:")
	b.WriteString("\n1. All quantities MUST be in pounds (lbs). If no unit is specified, assume pounds.")
	fmt.Fprintf(&b, "\n2. For dates: TODAY IS %s (Month %d, Day %d, Year %d)", ref.Format("January 2, 2006"), month, day, year)
	b.WriteString("\n   CRITICAL: When someone says a partial date like 'July 25', you must determine the correct year:")
	fmt.Fprintf(&b, "\n   - If the month is AFTER the current month (%d), use THIS YEAR (%d)", month, year)
	fmt.Fprintf(&b, "\n   - If the month is BEFORE the current month (%d), use NEXT YEAR (%d)", month, nextYear)
	fmt.Fprintf(&b, "\n   - If the month is THE SAME as current month (%d):", month)
	fmt.Fprintf(&b, "\n     * If the day is >= current day (%d), use THIS YEAR (%d)", day, year)
	fmt.Fprintf(&b, "\n     * If the day is < current day (%d), use NEXT YEAR (%d)", day, nextYear)
	fmt.Fprintf(&b, "\n   EXAMPLE: Today is %s, so 'July 25' = July 25, %d", ref.Format("January 2, 2006"), exampleYear)
	b.WriteString("\n3. Delivery address: Extract complete addresses with street address and city. Accept any format that includes a street address and city name.")
	b.WriteString("\n4. If someone provides a street address and city, that's sufficient - business name is optional.")
	b.WriteString("\n5. Only mark delivery_address as null if NO address information is provided at all.")
	fmt.Fprintf(&b, "\n6. ASSUME ALL ADDRESSES ARE IN %s: If no state is mentioned, automatically add '%s' to the address.", region, region)
	b.WriteString("\n7. IMPORTANT: Always include a city name. If only a street address is given, you must infer or ask for the city.")
	b.WriteString("\n\nExample format:")
	fmt.Fprintf(&b, "\n{\"items\": [{\"product\": \"salmon\", \"quantity\": \"10 lbs\"}], \"delivery_date\": \"Friday, July 25, %d\", \"delivery_address\": \"123 Main St, Seattle, %s\", \"notes\": \"Before noon\"}", exampleYear, region)
	b.WriteString("\n\nConversation:\n")
	for _, t := range turns {
		if t.Inbound() {
			b.WriteString("Customer: ")
			b.WriteString(t.Text)
			b.WriteString("\n")
		}
	}
	b.WriteString("\nOrder JSON:")
	return b.String()
}
