package ats

const systemPrompt = `You are an expert ATS reviewer. Given resume text, return ONLY a single JSON object (no surrounding text, no explanation) with exactly these keys:
{
  "score": <integer 0-100>,
  "summary": "<2-3 sentence summary>",
  "recommendations": ["short tip 1", "short tip 2"]
}
Make "score" an integer between 0 and 100. Do not include any other keys or commentary.`

const followupInstruction = `Return ONLY a single JSON object with exactly this key: {"score":<integer 0-100>}. No explanatory text. Use the resume snippet provided to determine the score.`

const followupSystem = `You are an ATS scoring assistant. Output only the required JSON.`
