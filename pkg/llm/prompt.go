package llm

import (
	"fmt"
	"strings"

	"github.com/resumo-news/resumo/pkg/domain"
)

// categoryInstructions holds dedicated search instructions, other categories use genericInstruction
var categoryInstructions = map[domain.Category]string{
	domain.CategoryCelebrity: "Busque as últimas fofocas, polêmicas e notícias sobre celebridades brasileiras, influenciadores e TV.",
	domain.CategoryReligion:  "Busque as últimas notícias do mundo cristão, evangélico, música gospel e igrejas no Brasil.",
	domain.CategoryGeneral:   "Busque as notícias mais importantes e urgentes do Brasil e do mundo agora.",
}

const genericInstruction = "Busque as últimas notícias sobre %s no Brasil."

// default system prompt for headline generation
const defaultSystemPrompt = `Você é um editor de jornal brasileiro que usa a busca para encontrar notícias reais e recentes.
Responda sempre em português do Brasil e somente com o JSON pedido, sem comentários antes ou depois.`

// instruction returns the search instruction for the category
func instruction(c domain.Category) string {
	if s, ok := categoryInstructions[c]; ok {
		return s
	}
	return fmt.Sprintf(genericInstruction, c.Label())
}

// buildPrompt creates the user prompt for the category
func buildPrompt(c domain.Category, count, summaryMin, summaryMax int) string {
	var sb strings.Builder

	sb.WriteString(instruction(c))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Liste exatamente %d notícias recentes e REAIS encontradas na busca.\n\n", count))

	sb.WriteString("Para CADA notícia, gere um objeto JSON com os seguintes campos:\n")
	sb.WriteString("1. title: Um título jornalístico completo e informativo.\n")
	sb.WriteString("2. sourceName: O nome da fonte original (ex: G1, UOL, CNN, Folha).\n")
	sb.WriteString(`3. publishedTime: A data e hora da publicação original que você encontrar (ex: "Hoje às 14:30", "Ontem 18:00", "12/05 - 10h"). `)
	sb.WriteString(`Se não encontrar hora exata, estime com base no "há x horas".` + "\n")
	sb.WriteString(fmt.Sprintf("4. summary: Um TEXTO NARRATIVO LONGO e DETALHADO (mínimo de %d e máximo de %d caracteres).\n", summaryMin, summaryMax))
	sb.WriteString("5. sourceUrl: O link da matéria original encontrada na busca, ou vazio se não houver.\n\n")

	sb.WriteString("REGRAS CRUCIAIS PARA O TEXTO (summary):\n")
	sb.WriteString("- NÃO UTILIZE ASPAS PARA CITAÇÕES. Transforme todas as falas em discurso indireto ")
	sb.WriteString(`(ex: em vez de dizer "O presidente disse: 'Vou assinar'", diga "O presidente afirmou que assinaria o documento").` + "\n")
	sb.WriteString("- O texto deve ser corrido, sem tópicos, explicando o contexto, o desenrolar e as consequências do fato.\n")
	sb.WriteString("- Evite termos sensacionalistas, mantenha o tom jornalístico sério (ou leve para fofocas, mas narrativo).\n\n")

	sb.WriteString("Formate a resposta ESTRITAMENTE como um array JSON de objetos.\n")
	sb.WriteString("Estrutura:\n")
	sb.WriteString(`[
  {
    "title": "...",
    "sourceName": "...",
    "publishedTime": "...",
    "summary": "Texto longo narrativo sem citações...",
    "sourceUrl": "https://..."
  }
]`)
	return sb.String()
}
