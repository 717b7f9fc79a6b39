package wordlist

// TestParagraphs are typed, in order, before adaptive practice begins.
var TestParagraphs = []string{
	"the quick brown fox jumps over the lazy dog while zigzagging through exotic vegetation with maximum speed and agility",
	"pack my box with five dozen liquor jugs while quickly analyzing the government budget expectations for next quarter",
	"few black taxis drive up major roads on quiet hazy nights seeking convenience and just making weekly plans",
}

var defaultWords = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
	"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
	"this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
	"or", "an", "will", "my", "one", "all", "would", "there", "their", "what",
	"so", "up", "out", "if", "about", "who", "get", "which", "go", "me",
	"when", "make", "can", "like", "time", "no", "just", "him", "know", "take",
	"people", "into", "year", "your", "good", "some", "could", "them", "see", "other",
	"than", "then", "now", "look", "only", "come", "its", "over", "think", "also",
	"back", "after", "use", "two", "how", "our", "work", "first", "well", "way",
	"even", "new", "want", "because", "any", "these", "give", "day", "most", "us",
	"is", "was", "are", "been", "has", "had", "were", "said", "did", "having",
	"may", "should", "must", "might", "being", "does", "done", "doing", "made",
	"making", "through", "before", "between", "under", "since", "both", "each", "few", "more",
	"many", "such", "own", "same", "too", "very",
	"during", "always", "where", "why", "find", "something", "seem", "next",
	"near", "together", "became", "call", "help", "within", "state", "never", "become", "high",
	"enough", "across", "although", "still", "children", "side", "feet", "car", "city", "walk",
	"story", "until", "far", "sea", "draw", "left", "late", "run", "while",
	"press", "close", "night", "real", "life", "north", "book", "carry", "science", "eat",
	"room", "friend", "began", "idea", "fish", "mountain", "stop", "once", "base", "hear",
	"horse", "cut", "sure", "watch", "color", "face", "wood", "main", "open",
	"quiz", "zero", "zone", "zeal", "zip", "zoo", "zap", "zen", "zigzag", "zinc",
	"rix", "vex", "vox", "wax", "fox", "box", "mix", "six", "fix", "tax",
	"oxygen", "pixie", "proxy", "toxic", "oxy", "lynx", "onyx", "yx", "xray", "waxy",
	"fuzzy", "jazz", "fizz", "buzz", "lazy", "crazy", "hazy", "cozy", "dozen", "frozen",
}
