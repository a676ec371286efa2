package town

import "github.com/learnquest/learnquest/internal/progress"

// catalog is the validated building list, in display order.
var catalog = MustLoad(seed)

var seed = []Building{
	{
		Domain: progress.DomainWebDev,
		Tiers: []Tier{
			{1, "Atelier de Code Débutant", "Une petite cabane en bois avec une antenne satellite rudimentaire.", 0, "Quêtes Validées"},
			{2, "Laboratoire d'Algorithmes", "Un bâtiment moderne en briques rouges avec de grandes fenêtres et des serveurs visibles à l'intérieur.", 100, "Quêtes Validées"},
			{3, "Usine Logicielle", "Un complexe industriel à plusieurs étages avec des lignes d'assemblage de robots virtuels.", 500, "Quêtes Validées"},
		},
	},
	{
		Domain: progress.DomainAnglais,
		Tiers: []Tier{
			{1, "Cahier de Notes", "Un pupitre simple à côté d'une chaise, avec un dictionnaire ouvert.", 0, "Mots Maîtrisés"},
			{2, "Bibliothèque Technique", "Une petite pièce remplie de livres techniques en anglais et d'écrans de traduction.", 50, "Mots Maîtrisés"},
			{3, "Centre de Traduction Internationale", "Un grand dôme de verre avec des symboles linguistiques flottants.", 200, "Mots Maîtrisés"},
		},
	},
	{
		Domain: progress.DomainAI,
		Tiers: []Tier{
			{1, "Antenne d'Observation", "Une petite antenne parabolique pointant vers le ciel.", 0, "Prompts Testés"},
			{2, "Centre de Données Gemini", "Une pièce souterraine blindée avec des racks de serveurs lumineux.", 30, "Prompts Testés"},
			{3, "Forge de Modèles", "Une haute tour avec une énergie bleu électrique pulsant au sommet.", 150, "Prompts Testés"},
		},
	},
	{
		Domain: progress.DomainConduite,
		Tiers: []Tier{
			{1, "Garage Personnel", "Un petit garage avec des outils et une voiture en réparation.", 0, "KM parcourus"},
			{2, "École de Pilotage", "Un circuit asphalté avec des cônes et une tour de contrôle.", 50, "KM parcourus"},
			{3, "Hub de Transport", "Une station futuriste avec des véhicules autonomes en mouvement constant.", 200, "KM parcourus"},
		},
	},
	{
		Domain: progress.DomainBibliotheque,
		Tiers: []Tier{
			{1, "Coin Lecture", "Un fauteuil confortable sous une lampe, entouré de quelques piles de livres.", 0, "Livres lus"},
			{2, "Archives Municipales", "Un bâtiment classique avec des colonnes et des rangées infinies d'étagères.", 10, "Livres lus"},
			{3, "Sanctuaire du Savoir", "Une structure cristalline flottante où les livres tournent en orbite.", 50, "Livres lus"},
		},
	},
	{
		Domain: progress.DomainHorlogerie,
		Tiers: []Tier{
			{1, "Établi d'Apprenti", "Une table de travail avec des loupes et des petits engrenages éparpillés.", 0, "Montres réparées"},
			{2, "Atelier de Précision", "Une boutique élégante avec des horloges de toutes les époques aux murs.", 5, "Montres réparées"},
			{3, "Maître du Temps", "Une tour d'horloge géante avec des mécanismes visibles et complexes à l'extérieur.", 20, "Montres réparées"},
		},
	},
}
