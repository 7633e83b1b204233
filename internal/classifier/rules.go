package classifier

import "regexp"

// keywordRule maps a bucket to the provider category and descriptor
// keywords that select it. Matching is case-insensitive substring
// containment, so "food" also matches "food and drink".
type keywordRule struct {
	bucket   Bucket
	keywords []string
}

// keywordTable is consulted in order, the first matching bucket wins.
// All keywords are lowercase.
var keywordTable = []keywordRule{
	{BucketRent, []string{"rent", "mortgage", "real estate", "apartments", "housing"}},
	{BucketUtilities, []string{
		"utilities", "electric", "gas", "water", "internet", "cable", "phone",
		"mobile phone", "television", "internet service providers",
		"telecommunication services",
	}},
	{BucketFood, []string{"supermarkets", "groceries", "food and drink", "grocery", "convenience stores"}},
	{BucketTransportation, []string{
		"gas", "gas stations", "automotive", "public transportation", "taxi",
		"uber", "lyft", "parking", "car service", "airlines", "air travel",
		"rail", "parking fees", "car rental", "travel",
	}},
	{BucketRecreation, []string{
		"entertainment", "movies", "music", "recreation", "arts", "sports",
		"games", "amusement", "restaurants", "food and drink", "dining", "bar",
		"coffee shop", "fast food", "subscription", "streaming", "concerts",
		"events", "theaters", "bowling",
	}},
	{BucketInsurance, []string{"insurance", "auto insurance", "health insurance", "life insurance", "home insurance"}},
	{BucketLoans, []string{
		"loan", "student loan", "credit card", "credit card payment",
		"personal loan", "debt", "student loans", "credit card payments",
		"loans and mortgages",
	}},
	{BucketSavings, []string{
		"deposit", "savings", "investment", "retirement", "financial",
		"banking", "investments", "retirement contributions", "brokerage",
		"checking",
	}},
	{BucketOther, []string{"transfer"}},
}

// overrideRule tests a regular expression against the lowercase
// descriptor. Overrides take precedence over the keyword table since
// a descriptor phrase is more specific than an aggregator label.
type overrideRule struct {
	bucket Bucket
	re     *regexp.Regexp
}

// overrides are tested in order, the first match wins.
var overrides = []overrideRule{
	{BucketRent, regexp.MustCompile(`rent|lease|apartment|housing`)},
	{BucketUtilities, regexp.MustCompile(`electric|gas|water|utility|internet|cable|phone|mobile`)},
	{BucketFood, regexp.MustCompile(`grocery|supermarket|food|trader|whole foods|safeway|kroger|publix|walmart|target`)},
	{BucketTransportation, regexp.MustCompile(`uber|lyft|taxi|gas|shell|exxon|chevron|bp|car service|car repair|auto|transit`)},
	{BucketRecreation, regexp.MustCompile(`restaurant|dining|grubhub|doordash|ubereats|starbucks|cafe|coffee|movie|theater|entertainment|netflix|spotify|hulu|disney`)},
	{BucketInsurance, regexp.MustCompile(`insurance|geico|state farm|progressive|allstate|anthem|cigna|aetna`)},
	{BucketLoans, regexp.MustCompile(`loan|lending|credit card payment|mortgage payment|student loan|auto loan`)},
	{BucketSavings, regexp.MustCompile(`transfer to savings|deposit|investment|fidelity|vanguard|schwab|401k|ira`)},
}
