package session

// sampleDocument is loaded by LoadSample.
const sampleDocument = `{
  "name": "Ada Lovelace",
  "age": 36,
  "department": "Engineering",
  "skills": ["Go", "Python", "Java"],
  "address": {
    "country": "United Kingdom",
    "city": "London",
    "detail": {
      "street": "St James's Square",
      "postCode": "SW1Y 4JU"
    }
  },
  "projects": [
    {"name": "Ticketing", "status": "in progress", "priority": "high"},
    {"name": "Data platform", "status": "done", "priority": "medium"}
  ],
  "isActive": true,
  "metadata": null
}`
