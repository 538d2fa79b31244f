package spirit

var jokes = []string{
	"Why is Christmas just like a day at the office? You do all the work and the fat guy in the suit gets all the credit.",
	"What do you call an obnoxious reindeer? Rude-olph!",
	"Why did the developer go broke during Christmas? Because he used up all his cache!",
	"What's a programmer's favorite Christmas carol? 'While(true) { bells.ring() }'",
	"Why do coders prefer dark mode during the holidays? Because light attracts bugs, even in December!",
	"What did the Git commit say on Christmas? 'Merge Christmas!'",
	"Why was the computer cold at Christmas? It left its Windows open!",
	"What's Santa's favorite programming language? Rust - it's memory-safe for his naughty and nice list!",
	"Why don't programmers like Christmas decorations? Too many hanging ornaments - they prefer async/await!",
	"What do you call a cat on Christmas Eve? Santa Claws!",
}

var trivia = []string{
	"The tradition of putting up a Christmas tree originated in Germany in the 16th century.",
	"Jingle Bells was originally written for Thanksgiving, not Christmas!",
	"The first artificial Christmas tree was made in Germany using goose feathers dyed green.",
	"In Japan, it's a popular tradition to eat KFC for Christmas dinner.",
	"The world's largest Christmas stocking measured 168 feet and 5.5 inches long and 70 feet and 4.5 inches wide.",
	"The abbreviation 'Xmas' comes from the Greek letter Chi (X), which is the first letter of 'Christ' in Greek.",
	"The song 'White Christmas' by Bing Crosby is the best-selling single of all time with over 50 million copies sold.",
	"In Ukraine, it's traditional to decorate Christmas trees with artificial spider webs for good luck.",
	"The tradition of hanging stockings comes from a legend about Saint Nicholas helping a poor family.",
	"The first electric Christmas lights were created by Thomas Edison's associate, Edward H. Johnson, in 1882.",
}

var activities = []string{
	"Build a snowman and give it a programmer's twist - maybe a keyboard as buttons!",
	"Watch a classic holiday movie like 'Home Alone' or 'Elf'",
	"Bake Christmas cookies in festive shapes",
	"Create a GitHub repo to track your New Year's resolutions",
	"Write a holiday-themed script or app",
	"Decorate your Christmas tree with tech-themed ornaments",
	"Have a hot cocoa coding session",
	"Read 'A Christmas Carol' by Charles Dickens",
	"Make a festive Spotify playlist",
	"Try your hand at Christmas caroling with friends",
	"Set up your development environment with a festive theme",
	"Contribute to an open-source project as a holiday gift to the community",
	"Create ASCII art of holiday characters",
	"Host a virtual holiday party with your remote team",
}

var cheerfulMessages = []string{
	"🎄 May your code compile on the first try this holiday season!",
	"🎅 Ho ho ho! Santa's debugging your code tonight!",
	"⭐ Wishing you zero bugs and 100% test coverage this Christmas!",
	"🎁 Your gift: A perfectly optimized algorithm!",
	"❄️ Let it snow... merge conflicts! Just kidding, smooth deploys ahead!",
	"🔔 Jingle bells, jingle bells, CI/CD all the way!",
	"🌟 May your builds be green and your coffee be strong!",
	"🎅 Santa checked his list twice - your PR looks nice!",
	"🎄 Merry Commits and a Happy New Deploy!",
	"✨ May all your agents be smart and your builds be serene!",
}

const (
	motivationalMessage = "🌟 Remember: Every great codebase was once just an empty repo. Keep pushing, keep coding, and have a wonderful Christmas 2025!"
	funnyMessage        = "🎅 Santa's elves tried to debug your code but they got distracted by the gingerbread cookies. They say it looks delicious though!"
)

// Jokes returns a copy of the joke list
func Jokes() []string { return append([]string(nil), jokes...) }

// TriviaFacts returns a copy of the trivia list
func TriviaFacts() []string { return append([]string(nil), trivia...) }

// Activities returns a copy of the activity list
func Activities() []string { return append([]string(nil), activities...) }
