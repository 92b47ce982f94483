package templates

// SearchExtractionSystem pins the extractor model to JSON-only replies.
const SearchExtractionSystem = "Extract flight search parameters from user queries. Always respond with valid JSON only."

// SearchExtractionPrompt is the user prompt for turning a free-text travel
// request into structured search parameters. Format arguments: the raw
// query, the current date (YYYY-MM-DD) and the current year.
const SearchExtractionPrompt = `Parse this flight search request and extract budget information: "%s"

Current date: %s

Extract these parameters (set to null if not mentioned):
- origin: IATA airport code (3 letters)
- destination: IATA airport code (3 letters)
- departure_date: Date in YYYY-MM-DD format (use %d as year)
- return_date: Return date if mentioned
- adults: Number of adults (default 1)
- children: Number of children
- infants: Number of infants
- budget: Extract budget amount as number (from phrases like "budget $400", "under $500", "max 300")
- currency: Currency code (USD, EUR, SGD, etc.)
- non_stop: true if "direct" or "non-stop" mentioned
- preferred_airlines: Array of airline codes if mentioned
- avoided_airlines: Array of airline codes to avoid

Budget extraction examples:
- "budget is $400" -> budget: 400, currency: "USD"
- "under $500" -> budget: 500, currency: "USD"
- "max 300 euros" -> budget: 300, currency: "EUR"

Respond with JSON only:
`
