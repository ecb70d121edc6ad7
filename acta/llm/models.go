package llm

// ModelInfo describes one free OpenRouter model option.
type ModelInfo struct {
	Label     string
	ID        string
	WeeklyTok int64
	Context   int
}

// Models maps short aliases to free OpenRouter models. The alias is what
// goes in UQBAR_MODEL; anything not found here is passed through as a raw
// model identifier.
var Models = map[string]ModelInfo{
	"allenai_31":        {"AllenAI: Olmo 3.1 32B Think (free)", "allenai/olmo-3.1-32b-think:free", 38_000_000_000, 66_000},
	"allenai_3":         {"AllenAI: Olmo 3 32B Think (free)", "allenai/olmo-3-32b-think:free", 12_000_000_000, 66_000},
	"arcee_ai":          {"Arcee AI: Trinity Mini (free)", "arcee-ai/trinity-mini:free", 366_000_000, 131_000},
	"deepseek_r1":       {"DeepSeek: R1 0528 (free)", "deepseek/deepseek-r1-0528:free", 19_000_000_000, 164_000},
	"mistral_small_24b": {"Mistral: Mistral Small 3.1 24B (free)", "mistralai/mistral-small-3.1-24b-instruct:free", 242_000_000, 128_000},
	"openai_oss_120b":   {"OpenAI: gpt-oss-120b (free)", "openai/gpt-oss-120b:free", 745_000_000, 131_000},
	"openai_oss_20b":    {"OpenAI: gpt-oss-20b (free)", "openai/gpt-oss-20b:free", 38_000_000_000, 131_000},
	"z_ai":              {"Z.AI: GLM 4.5 Air (free)", "z-ai/glm-4.5-air:free", 176_000_000_000, 131_000},
	"tng":               {"TNG: R1T Chimera (free)", "tngtech/tng-r1t-chimera:free", 128_000_000_000, 164_000},
	"moonshotai":        {"MoonshotAI: Kimi K2 0711 (free)", "moonshotai/kimi-k2:free", 699_000_000, 33_000},
	"qwen_4b":           {"Qwen: Qwen3 4B (free)", "qwen/qwen3-4b:free", 574_000_000, 41_000},
	"google_gemma_12b":  {"Google: Gemma 3 12B (free)", "google/gemma-3-12b-it:free", 424_000_000, 33_000},
}

// ResolveModel maps an alias to its model identifier, passing through
// unknown values unchanged.
func ResolveModel(alias string) string {
	if m, ok := Models[alias]; ok {
		return m.ID
	}
	return alias
}
