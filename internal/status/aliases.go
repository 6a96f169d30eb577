package status

// knownStatusPages maps a lowercase service alias to its status page URL,
// covering the services callers most commonly ask about so the client can
// skip pattern-probing for them entirely.
var knownStatusPages = map[string]string{
	"github":        "https://www.githubstatus.com",
	"gitlab":        "https://status.gitlab.com",
	"bitbucket":     "https://bitbucket.status.atlassian.com",
	"npm":           "https://status.npmjs.org",
	"pypi":          "https://status.python.org",
	"docker":        "https://www.dockerstatus.com",
	"dockerhub":     "https://www.dockerstatus.com",
	"aws":           "https://health.aws.amazon.com/health/status",
	"azure":         "https://status.azure.com",
	"gcp":           "https://status.cloud.google.com",
	"google cloud":  "https://status.cloud.google.com",
	"cloudflare":    "https://www.cloudflarestatus.com",
	"fastly":        "https://status.fastly.com",
	"heroku":        "https://status.heroku.com",
	"netlify":       "https://www.netlifystatus.com",
	"vercel":        "https://www.vercel-status.com",
	"digitalocean":  "https://status.digitalocean.com",
	"linode":        "https://status.linode.com",
	"openai":        "https://status.openai.com",
	"anthropic":     "https://status.anthropic.com",
	"stripe":        "https://status.stripe.com",
	"paypal":        "https://www.paypal-status.com",
	"twilio":        "https://status.twilio.com",
	"sendgrid":      "https://status.sendgrid.com",
	"mailgun":       "https://status.mailgun.com",
	"slack":         "https://slack-status.com",
	"discord":       "https://discordstatus.com",
	"zoom":          "https://status.zoom.us",
	"atlassian":     "https://status.atlassian.com",
	"jira":          "https://jira-software.status.atlassian.com",
	"confluence":    "https://confluence.status.atlassian.com",
	"trello":        "https://trello.status.atlassian.com",
	"notion":        "https://status.notion.so",
	"figma":         "https://status.figma.com",
	"dropbox":       "https://status.dropbox.com",
	"box":           "https://status.box.com",
	"salesforce":    "https://status.salesforce.com",
	"shopify":       "https://www.shopifystatus.com",
	"twilio sendgrid": "https://status.sendgrid.com",
	"mongodb":       "https://status.mongodb.com",
	"mongodb atlas": "https://status.cloud.mongodb.com",
	"redis":         "https://status.redis.com",
	"elastic":       "https://status.elastic.co",
	"elasticsearch": "https://status.elastic.co",
	"datadog":       "https://status.datadoghq.com",
	"new relic":     "https://status.newrelic.com",
	"pagerduty":     "https://status.pagerduty.com",
	"sentry":        "https://status.sentry.io",
	"circleci":      "https://status.circleci.com",
	"travis ci":     "https://www.traviscistatus.com",
	"jenkins":       "https://status.jenkins.io",
	"npm registry":  "https://status.npmjs.org",
	"crates.io":     "https://crates-io.statuspage.io",
	"rubygems":      "https://status.rubygems.org",
	"firebase":      "https://status.firebase.google.com",
	"supabase":      "https://status.supabase.com",
	"planetscale":   "https://www.planetscalestatus.com",
	"auth0":         "https://status.auth0.com",
	"okta":          "https://status.okta.com",
	"zendesk":       "https://status.zendesk.com",
	"intercom":      "https://www.intercomstatus.com",
	"hubspot":       "https://status.hubspot.com",
	"mixpanel":      "https://status.mixpanel.com",
	"segment":       "https://status.segment.com",
	"algolia":       "https://status.algolia.com",
	"cloudinary":    "https://status.cloudinary.com",
	"vimeo":         "https://vimeostatus.com",
	"spotify":       "https://www.spotifystatus.com",
	"reddit":        "https://www.redditstatus.com",
	"linkedin":      "https://www.linkedin.com/help/linkedin/status",
	"x":             "https://status.twitterstack.com",
	"twitter":       "https://status.twitterstack.com",
	"netlify cms":   "https://www.netlifystatus.com",
	"render":        "https://status.render.com",
	"fly.io":        "https://status.flyio.net",
	"railway":       "https://railway.instatus.com",
	"vultr":         "https://status.vultr.com",
	"hetzner":       "https://status.hetzner.com",
	"ovh":           "https://status.ovhcloud.com",
	"ibm cloud":     "https://cloud.ibm.com/status",
	"oracle cloud":  "https://ocistatus.oraclecloud.com",
}

// lookupKnownStatusPage returns the curated status-page URL for alias,
// matched case-insensitively, or "" if alias has no curated entry.
func lookupKnownStatusPage(alias string) string {
	return knownStatusPages[normalizeAlias(alias)]
}
