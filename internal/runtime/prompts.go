package runtime

import (
	"fmt"
	"strings"
)

const questionUserType = "Are you a property owner looking to rent out your home, or are you looking to rent a property? (owner/resident)"

const reaskUserType = "Please specify 'owner' or 'resident'"

const questionOwnerDetails = `Please provide your home details in the following format:
Full Name: [Your Name]
Contact: [Phone or Email]
Home Address: [Full Address]
Utilities On: [Yes/No]
Home Vacant: [Yes/No]`

const questionResidentPreferences = `Please provide your rental preferences:
Number of bedrooms: [1, 2, 3, 4+]
Preferred city/area: [Area name]
Budget: [Monthly budget in $]
Additional preferences: [Any specific requirements]`

func proposeInspection(date string) string {
	return "Looks like your home is ready for an inspection! Let's try to " +
		fmt.Sprintf("schedule it. How does %s sound? ", date) +
		"If that's not good, just suggest a new one and we'll make it work!"
}

func classifyPrompt(reply string) string {
	return fmt.Sprintf(`You are a real estate agent. Based on the user's input, determine if they are an owner or resident.
User input: %s.
Only respond with 'owner' or 'resident'.`, reply)
}

func matchPrompt(preferences, catalog string) string {
	return fmt.Sprintf(`You are a real estate agent. Based on the user's preferences, select the properties
that match their criteria.
User preferences: %s.

The listings are as follows:
%s

Return suggestions for properties the user might like, based on their parameters and location.
Keep the JSON format I just gave you, only filter out properties that don't match.`, preferences, catalog)
}

func showPrompt(preferences, properties string) string {
	return fmt.Sprintf(`You are a real estate agent. Based on the user's preferences, you
were given a list of potential properties.

User preferences: %s.

The listings are as follows:
%s.

You have to make the properties sound appealing and highlight why they
are relevant and aligned with what the user requested.`, preferences, strings.TrimSpace(properties))
}
