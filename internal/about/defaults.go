package about

// Defaults are the sections the site ships with.
func Defaults() []Section {
	return []Section{
		{
			SectionID: "qui-sommes-nous",
			Title:     "Qui sommes-nous ?",
			Content:   "Nous sommes une organisation de droit congolais basée à Kolwezi, chef-lieu de la Province du Lualaba. Le CAJJ est constitué de juristes et d'avocats volontaires engagés pour la promotion et la protection des droits humains et de l'environnement associés à l'exploitation des ressources naturelles (mines, forêts, hydrocarbures, énergies et eau).",
		},
		{
			SectionID: "vision",
			Title:     "Notre vision",
			Content:   "Nous prônons un monde dans lequel chaque être humain, homme, femme, enfant, jouit de ses droits en toute égalité et en toute circonstance.",
		},
		{
			SectionID: "mission",
			Title:     "Notre mission",
			Content:   "Notre mission est de contribuer à la promotion et à la protection des droits humains en général et des droits de l'environnement associés à l'exploitation des ressources naturelles (mines, forêt, hydrocarbures, énergies et eau) en particulier. À cette fin, le CAJJ veille à l'application des normes juridiques nationales et des instruments juridiques régionaux et internationaux relatifs aux droits humains dûment ratifiés par la RD Congo.",
		},
		{
			SectionID: "devise",
			Title:     "Notre devise",
			Content:   "Étant une organisation locale œuvrant pour la promotion et la protection des droits humains, notre devise est : assister, former et informer.",
		},
		{
			SectionID: "valeurs",
			Title:     "Nos valeurs",
			Content:   "Nos grandes valeurs humanitaires sont inspirées par notre mission et notre éthique de défenseurs des droits humains : dignité, égalité, engagement, respect, liberté, solidarité, autonomie, intégrité, compassion, confidentialité.",
		},
	}
}
