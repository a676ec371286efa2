package skilltree

import "github.com/learnquest/learnquest/internal/progress"

const (
	bp = progress.CostBP
	sp = progress.CostSP
)

var seed = []Tree{
	{
		Domain: progress.DomainAnglais,
		Branches: []Branch{
			{
				ID:          "eng_lexique",
				Name:        "A. Lexique IA",
				Description: "Maîtrise du vocabulaire technique et des concepts IA.",
				Nodes: []Node{
					{ID: "en_lex_1", Title: "Bases Techniques", Description: "Vocabulaire essentiel du web.", Cost: 1, CostType: sp, Perk: "+5% XP sur les Quêtes Anglais"},
					{ID: "en_lex_2", Title: "Jargon LLM", Description: "Comprendre tokens, context window, RAG.", Cost: 1, CostType: sp, ParentID: "en_lex_1", Perk: `Débloque les tests Anglais "Avancé"`},
					{ID: "en_lex_3", Title: "Expert Sémantique", Description: "Nuances fines des instructions.", Cost: 1, CostType: bp, ParentID: "en_lex_2", Perk: "Bonus: Générateur de Glossaire Personnel"},
				},
			},
			{
				ID:          "eng_oral",
				Name:        "B. Communication",
				Description: "Fluidité des échanges et simulations orales.",
				Nodes: []Node{
					{ID: "en_com_1", Title: "Short Answers", Description: "Réponses concises et efficaces.", Cost: 1, CostType: sp, Perk: "+1 Coin par bonne réponse"},
					{ID: "en_com_2", Title: "Debate Club", Description: "Argumenter ses choix techniques.", Cost: 2, CostType: sp, ParentID: "en_com_1"},
				},
			},
		},
	},
	{
		Domain: progress.DomainWebDev,
		Branches: []Branch{
			{
				ID:          "code_fund",
				Name:        "A. Fondamentaux",
				Description: "Syntaxe, Algo et Structures de données.",
				Nodes: []Node{
					{ID: "co_fun_1", Title: "Clean Code", Description: "Variables et fonctions propres.", Cost: 1, CostType: sp, Perk: `Débloque les défis "Refactoring"`},
					{ID: "co_fun_2", Title: "Algo Master", Description: "Boucles et conditions complexes.", Cost: 1, CostType: sp, ParentID: "co_fun_1"},
					{ID: "co_fun_3", Title: "Pythonic Way", Description: "List comprehensions & decorators.", Cost: 2, CostType: bp, ParentID: "co_fun_2", Perk: "Accès anticipé aux solutions"},
				},
			},
			{
				ID:          "code_api",
				Name:        "B. API & Frameworks",
				Description: "Connexion aux modèles et aux services externes.",
				Nodes: []Node{
					{ID: "co_api_1", Title: "REST Client", Description: "Appels HTTP, JSON et gestion des erreurs.", Cost: 1, CostType: sp},
					{ID: "co_api_2", Title: "SDK Gemini", Description: "Intégrer un modèle génératif dans une application.", Cost: 2, CostType: sp, ParentID: "co_api_1", Perk: "Débloque les quêtes d'intégration IA"},
					{ID: "co_api_3", Title: "Full-Stack Builder", Description: "Front, back et déploiement de bout en bout.", Cost: 1, CostType: bp, ParentID: "co_api_2"},
				},
			},
		},
	},
	{
		Domain: progress.DomainAI,
		Branches: []Branch{
			{
				ID:          "ai_prompt",
				Name:        "A. Prompt Engineering",
				Description: "Structurer des instructions claires et robustes.",
				Nodes: []Node{
					{ID: "ai_pro_1", Title: "Zero-Shot", Description: "Formuler une consigne sans exemple.", Cost: 1, CostType: sp, Perk: "+5 XP par défi IA"},
					{ID: "ai_pro_2", Title: "Few-Shot", Description: "Guider le modèle avec des exemples choisis.", Cost: 1, CostType: sp, ParentID: "ai_pro_1"},
					{ID: "ai_pro_3", Title: "Chain of Thought", Description: "Décomposer le raisonnement étape par étape.", Cost: 1, CostType: bp, ParentID: "ai_pro_2", Perk: "Feedback détaillé sur les défis"},
				},
			},
			{
				ID:          "ai_rag",
				Name:        "B. Agents & RAG",
				Description: "Connecter les modèles à des données et des outils.",
				Nodes: []Node{
					{ID: "ai_rag_1", Title: "Embeddings", Description: "Représenter le texte pour la recherche sémantique.", Cost: 1, CostType: sp},
					{ID: "ai_rag_2", Title: "Pipeline RAG", Description: "Récupérer puis générer à partir de sources.", Cost: 2, CostType: sp, ParentID: "ai_rag_1"},
				},
			},
		},
	},
}
