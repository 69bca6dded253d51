package ingest

const companyListSchema = `{
  "type": "object",
  "properties": {
    "companies": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"description": "Name of the Provider", "type": "string"},
          "package": {"description": "Name of the Package", "type": "string"},
          "number_of_visas": {"description": "Number of visas", "type": ["integer", "null"]},
          "number_of_shareholders": {"description": "Number of shareholders", "type": ["integer", "null"]},
          "office_required": {"description": "Is an office required?", "type": ["boolean", "null"]},
          "cost": {"description": "Associated cost", "type": ["number", "null"]},
          "activity": {"description": "Activities Allowed in the freezone, e.g. consultancy, media, trading, freelance, and industrial activities etc", "type": ["string", "null"]}
        },
        "required": ["name", "package", "activity"]
      }
    }
  },
  "required": ["companies"]
}`

const fieldList = `- Name of the Provider
- Name of the Package
- Number of visas
- Number of shareholders
- Is an office required? (True/False)
- Associated cost
- Activities Allowed in the freezone, e.g. consultancy, media, trading, freelance, and industrial activities etc`

const enhancePrompt = `create meaningful sentences from this text each sentence should mention:

` + fieldList + `

Text: {text}`

const extractPrompt = `Extract structured information from the following text:

` + fieldList + `

Provide the output in JSON format.

Text: {text}

{format_instructions}`
