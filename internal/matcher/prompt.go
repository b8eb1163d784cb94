package matcher

import (
	"fmt"
	"strings"
)

const resumeMatchPromptTemplate = `You are an intelligent hiring assistant.

Here is the candidate's resume:
---
%s
---

Here is the job requirement list:
---
%s
---
1. Calculate resumeMatch (0-100) based on how closely the resume aligns with these job requirements and set it as "resumeMatch".
2. Extract all the information and fill it into this JSON format (fill missing fields as "N/A"):
Note: Fill workExperience and education arrays with all relevant entries found in the resume (not just one).
Return ONLY the JSON object, no markdown, no explanation.
{
  "name": "",
  "email": "",
  "phone": "",
  "position": "",
  "location": "",
  "resumeMatch": 0,
  "experience": "",
  "linkedin": "",
  "github": "",
  "portfolio": "",
  "summary": "",
  "skills": [],
  "workExperience": [
    {
      "company": "",
      "position": "",
      "duration": "",
      "description": ""
    }
  ],
  "education": [
    {
      "degree": "",
      "school": "",
      "year": ""
    }
  ]
}`

const transcriptPromptTemplate = `You are a senior technical interviewer. Below is the transcript of a technical interview:

---
%s
---

1. Evaluate the candidate's responses in terms of technical correctness, depth, and clarity.
2. Assign a score out of 100.
3. Provide 2-3 bullet points of constructive feedback.

Respond strictly in this JSON format:
{
    "score": 85,
    "feedback": [
        "Answer to question 2 lacked detail on database indexing.",
        "Great explanation of REST principles."
    ]
}`

const questionsPromptTemplate = `Generate 5 technical interview question-answer pairs for these technologies: %s. Format the output strictly as a JSON array like this:
[
  {
    "question": "What is ...?",
    "answer": "..."
  }
]`

func buildResumeMatchPrompt(resumeText string, requirements []string) string {
	return fmt.Sprintf(resumeMatchPromptTemplate, resumeText, strings.Join(requirements, ", "))
}

func buildTranscriptPrompt(transcript string) string {
	return fmt.Sprintf(transcriptPromptTemplate, transcript)
}

func buildQuestionsPrompt(topics []string) string {
	return fmt.Sprintf(questionsPromptTemplate, strings.Join(topics, ", "))
}
