package models

import "time"

// Request/response shapes for the HTTP surface.

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type SettingsResponse struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key,omitempty"`
	Model    string `json:"model,omitempty"`
}

type SettingsUpdateRequest struct {
	Provider *string `json:"provider,omitempty"`
	APIKey   *string `json:"api_key,omitempty"`
	Model    *string `json:"model,omitempty"`
}

type ResumeUploadResponse struct {
	Message     string `json:"message"`
	ResumeID    string `json:"resume_id"`
	TextPreview string `json:"text_preview"`
}

type ResumeInfo struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentHash string    `json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
}

type AnalyzeRequest struct {
	Role         string   `json:"role"`
	CutoffScore  float64  `json:"cutoff_score"`
	JDText       string   `json:"jd_text,omitempty"`
	CustomSkills []string `json:"custom_skills,omitempty"`
	Quick        bool     `json:"quick,omitempty"`
	ResumeID     string   `json:"resume_id,omitempty"`
}

type ImproveRequest struct {
	FocusAreas []string `json:"focus_areas,omitempty"`
	ResumeID   string   `json:"resume_id,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AskRequest struct {
	Question    string        `json:"question"`
	ChatHistory []ChatMessage `json:"chat_history,omitempty"`
	ResumeID    string        `json:"resume_id,omitempty"`
}

type AskResponse struct {
	Answer      string `json:"answer"`
	ContextUsed bool   `json:"context_used"`
}

type InterviewStartRequest struct {
	QuestionTypes      []string `json:"question_types"`
	Difficulty         string   `json:"difficulty"`
	NumQuestions       int      `json:"num_questions"`
	MaxDurationMinutes int      `json:"max_duration_minutes"`
	ResumeID           string   `json:"resume_id,omitempty"`
}

type InterviewQuestion struct {
	QuestionID   int    `json:"question_id"`
	QuestionText string `json:"question_text"`
	QuestionType string `json:"question_type"`
}

type InterviewStartResponse struct {
	InterviewID        string              `json:"interview_id"`
	Questions          []InterviewQuestion `json:"questions"`
	MaxDurationSeconds int                 `json:"max_duration_seconds"`
	StartTime          time.Time           `json:"start_time"`
}

type AnswerSubmission struct {
	QuestionID int    `json:"question_id"`
	Transcript string `json:"transcript"`
}

type AnswerSubmissionResponse struct {
	QuestionID     int         `json:"question_id"`
	Scores         AnswerScore `json:"scores"`
	NextQuestionID *int        `json:"next_question_id,omitempty"`
}

type InterviewSummary struct {
	TotalQuestions        int      `json:"total_questions"`
	AnsweredQuestions     int      `json:"answered_questions"`
	AverageCommunication  float64  `json:"average_communication"`
	AverageTechnical      float64  `json:"average_technical"`
	AverageProblemSolving float64  `json:"average_problem_solving"`
	OverallScore          float64  `json:"overall_score"`
	Decision              string   `json:"decision"`
	DetailedFeedback      string   `json:"detailed_feedback"`
	Strengths             []string `json:"strengths"`
	AreasForImprovement   []string `json:"areas_for_improvement"`
}

type JobSearchRequest struct {
	Query      string `json:"query"`
	Location   string `json:"location,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

type JobListing struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
	PostedDate  string `json:"posted_date,omitempty"`
}

type JobSearchResponse struct {
	Jobs       []JobListing `json:"jobs"`
	TotalFound int          `json:"total_found"`
}
