package actions

func Defaults() []Action {
	return []Action{
		{ActionID: "nos-actions", Order: 0, Title: "Nos actions",
			Description: "Nous accompagnons les justiciables à chaque étape, de la première écoute jusqu'au plaidoyer institutionnel, pour garantir la défense effective de leurs droits."},
		{ActionID: "consultation-gratuite", Order: 1, Title: "Consultation gratuite (écoute et orientation)",
			Description: "Offrir les premières informations juridiques, répondre aux questions légales urgentes et orienter les personnes vers la bonne juridiction ou le bon professionnel (avocat, tribunal, médiation, etc.)."},
		{ActionID: "accompagnement-juridique", Order: 2, Title: "Accompagnement juridique",
			Description: "Assister les requérant·e·s dans les démarches extrajudiciaires : rédaction de contrats, plaintes, testaments, procédures de conciliation ou accords amiables."},
		{ActionID: "accompagnement-judiciaire", Order: 3, Title: "Accompagnement judiciaire",
			Description: "Mettre à disposition des avocat·e·s-conseils pour représenter les victimes devant les juridictions, plaider, conclure et solliciter réparations ou dommages-intérêts."},
		{ActionID: "formation", Order: 4, Title: "Formation",
			Description: "Organiser des sessions de renforcement de capacités, ateliers, séminaires et conférences pour doter les communautés des connaissances nécessaires à l'exercice de leurs droits."},
		{ActionID: "sensibilisation", Order: 5, Title: "Sensibilisation",
			Description: "Vulgariser les instruments juridiques nationaux, régionaux et internationaux via des brochures, dépliants, et des émissions radio/télé pour faire connaître les droits fondamentaux."},
		{ActionID: "monitoring", Order: 6, Title: "Monitoring",
			Description: "Assurer le suivi, la recherche et la documentation des violations des droits humains, y compris des visites dans les centres pénitentiaires pour identifier abus de pouvoir et détentions illégales."},
		{ActionID: "plaidoyer", Order: 7, Title: "Plaidoyer",
			Description: "Interpeller les institutions locales, nationales et internationales afin d'obtenir des réformes légales ou pratiques garantissant une meilleure protection des droits humains."},
		{ActionID: "bonne-gouvernance", Order: 8, Title: "Bonne gouvernance",
			Description: "Promouvoir la transparence et la redevabilité, spécialement dans le secteur minier, pour une gestion responsable des ressources naturelles."},
	}
}
