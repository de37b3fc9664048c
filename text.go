package main

var (
	PrivacyPolicyFR = `Ce site enregistre des statistiques de visite anonymisées : l'adresse IP est
	hachée avec un sel propre au serveur avant tout stockage, et seuls le chemin visité, la langue et
	le navigateur sont conservés. L'en-tête Do Not Track est respecté. Les données de plus de douze
	mois sont supprimées automatiquement. Aucun cookie publicitaire n'est utilisé ; le seul cookie
	déposé mémorise votre langue.`

	PrivacyPolicyEN = `This site records anonymised visit statistics: your IP address is hashed with a
	server-specific salt before it is stored, and only the visited path, language and browser are
	kept. The Do Not Track header is honoured. Records older than twelve months are deleted
	automatically. No advertising cookies are used; the only cookie set remembers your language.`
)

func privacyPolicy(locale string) string {
	if locale == "en" {
		return PrivacyPolicyEN
	}
	return PrivacyPolicyFR
}
