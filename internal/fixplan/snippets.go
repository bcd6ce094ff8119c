package fixplan

const nextDisclosureComponent = `export function AIDisclosure() {
  return (
    <div role="note" aria-live="polite" className="ai-disclosure-banner">
      You are interacting with an AI system. Responses are generated
      automatically and may be inaccurate.
    </div>
  )
}
`

const genericDisclosureMiddleware = `export function aiDisclosureMiddleware(req, res, next) {
  res.setHeader('X-AI-Disclosure', 'This response was generated by an AI system.')
  next()
}
`

const contentMarkingSkeleton = `{
  "version": 1,
  "provenance": {
    "standard": "c2pa",
    "generator": "complior",
    "claimGenerator": "unspecified"
  },
  "markAllGeneratedContent": true
}
`

const interactionLoggerSource = `export interface AIInteractionEvent {
  timestamp: string
  sessionId: string
  model: string
  promptTokens?: number
  completionTokens?: number
}

export function logInteraction(event: AIInteractionEvent): void {
  console.log(JSON.stringify({ type: 'ai-interaction', ...event }))
}
`

const complianceMetadataSkeleton = `{
  "schemaVersion": 1,
  "system": "unspecified",
  "riskLevel": "unspecified",
  "provider": "unspecified",
  "lastAssessed": null
}
`
