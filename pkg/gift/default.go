package gift

import "time"

const birthdayPoem = "My Dearest Anushka, let this humble verse begin,\n" +
	"A tale of when our two small worlds first came within.\n" +
	"The night we met, so simple yet so beautifully spun,\n" +
	"A quiet tale of destiny, where two souls became one.\n\n" +
	"We stayed awake, whispering into the dark,\n" +
	"Every laugh, every word, every cry, striking a tender spark.\n" +
	"And then came the moment, gentle as morning dew,\n" +
	"When you breathed the words that changed my life - 'Love You'\n\n" +
	"And look at us now, love, almost a year gone by,\n" +
	"My heart still dances whenever you're nearby.\n" +
	"My little girl, my joy, you're a year older too,\n" +
	"Yet every day feels brand-new, all because of you.\n\n" +
	"So let this verse, though clumsy, hold my heart's design,\n" +
	"Happy Birthday, my love. Forever yours, and mine."

const birthdayCustomization = "Awesome! You've got the first draft. Now, time for us to reply! " +
	"How should I change this poem? Ask me to reply *funnier*, or *roast Harsh's poetry skills*, " +
	"or make it *super romantic*! Just say reply and the tone you want. " +
	"If you're happy with it, just tell me: **'I'm done!'**"

// Default returns the built-in two-gift birthday hunt.
func Default() *Catalog {
	return NewCatalog("birthday", []Gift{
		{
			Name:                "The Birthday Bard",
			Question:            "What color of dress was Harsh wearing when you first saw him 😏?",
			Answers:             []string{"blue", "cyan", "sky blue"},
			Content:             birthdayPoem,
			CustomizationPrompt: birthdayCustomization,
			Customizable:        true,
		},
		{
			Name:     "The Digital Gallery",
			Question: "What is Harsh's favorite animal that he always promises to get you?",
			Answers:  []string{"dog"},
			Content:  "<a href='#' target='_blank'>Click here to view your personalized Digital Photo Album!</a>",
		},
	}, map[int]time.Duration{
		1: 0,
		2: 3 * time.Hour,
	})
}
