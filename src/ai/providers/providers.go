package providers

import (
	_ "github.com/truthlens/truthlens-backend/src/ai/gemini"
	_ "github.com/truthlens/truthlens-backend/src/ai/gpt4o"
)
