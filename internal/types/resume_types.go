package types

// ExtractedEducation 从原始文本中抽取出的一条教育经历
// 所有字段都是尽力而为：没有匹配到就保持空字符串
type ExtractedEducation struct {
	University string `json:"university,omitempty"`
	Degree     string `json:"degree,omitempty"`
	Year       string `json:"year,omitempty"`
	Location   string `json:"location,omitempty"`
}

// ExtractedSkills 技能区块的四个带标签子列表
// 文本中缺少某个标签时对应列表为nil
type ExtractedSkills struct {
	Languages    []string `json:"languages,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Databases    []string `json:"databases,omitempty"`
	Tools        []string `json:"tools,omitempty"`
}

// IsEmpty 四个子列表是否全部为空
func (s ExtractedSkills) IsEmpty() bool {
	return len(s.Languages) == 0 && len(s.Technologies) == 0 &&
		len(s.Databases) == 0 && len(s.Tools) == 0
}

// ExtractedExperience 从原始文本中抽取出的一条工作经历
type ExtractedExperience struct {
	Company          string   `json:"company,omitempty"`
	Position         string   `json:"position,omitempty"`
	Duration         string   `json:"duration,omitempty"`
	Location         string   `json:"location,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// ExtractedProject 从原始文本中抽取出的一条项目经历
type ExtractedProject struct {
	Title      string   `json:"title,omitempty"`
	TechStack  string   `json:"techStack,omitempty"`
	DemoLink   string   `json:"demoLink,omitempty"`
	GithubLink string   `json:"githubLink,omitempty"`
	Points     []string `json:"points,omitempty"`
}

// ExtractedResumeData 字段抽取器的输出
// 每个字段都是可选的：找不到匹配就保持零值，抽取过程从不报错。
// 每次上传产生一份，被归一化器消费一次；可缓存在会话存储中作为恢复点。
type ExtractedResumeData struct {
	Name       string                `json:"name,omitempty"`
	Email      string                `json:"email,omitempty"`
	Links      []string              `json:"links,omitempty"`
	Education  []ExtractedEducation  `json:"education,omitempty"`
	Skills     ExtractedSkills       `json:"skills,omitempty"`
	Experience []ExtractedExperience `json:"experience,omitempty"`
	Projects   []ExtractedProject    `json:"projects,omitempty"`
}

// PersonalInfo 简历头部的个人信息，全部为空字符串默认值，不允许缺失
type PersonalInfo struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio,omitempty"`
	Location  string `json:"location"`
}

// Education 规范化后的教育经历条目，顺序即展示/打印顺序
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa,omitempty"`
}

// Experience 规范化后的工作经历条目
type Experience struct {
	Company          string   `json:"company"`
	Role             string   `json:"role"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Responsibilities []string `json:"responsibilities"`
}

// Project 规范化后的项目条目
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Points      []string `json:"points"`
	Link        string   `json:"link,omitempty"`
	GitLink     string   `json:"gitLink,omitempty"`
}

// Certification 证书条目
type Certification struct {
	Name      string `json:"name"`
	Issuer    string `json:"issuer"`
	IssueDate string `json:"issueDate"`
}

// Language 语言能力条目
type Language struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// ResumeData 规范化的简历记录，编辑/预览/导出都以它为准。
// 不变量：所有叶子字段都有默认值（空字符串/空切片），渲染方无需判空。
type ResumeData struct {
	PersonalInfo     PersonalInfo    `json:"personalInfo"`
	Summary          string          `json:"summary"`
	Education        []Education     `json:"education"`
	Experience       []Experience    `json:"experience"`
	Projects         []Project       `json:"projects"`
	Certifications   []Certification `json:"certifications"`
	AdditionalSkills []string        `json:"additionalSkills"`
	Languages        []Language      `json:"languages"`
	Interests        []string        `json:"interests"`
}

// NewResumeData 返回一份完整默认化的空简历
func NewResumeData() ResumeData {
	return ResumeData{
		Education:        []Education{},
		Experience:       []Experience{},
		Projects:         []Project{},
		Certifications:   []Certification{},
		AdditionalSkills: []string{},
		Languages:        []Language{},
		Interests:        []string{},
	}
}

// ResumeDataUpdate 编辑会话的局部更新：非nil的字段整体替换对应区块。
// 这是对"全局可变上下文"的替代——调用方持有会话ID，显式提交变更。
type ResumeDataUpdate struct {
	PersonalInfo     *PersonalInfo    `json:"personalInfo,omitempty"`
	Summary          *string          `json:"summary,omitempty"`
	Education        *[]Education     `json:"education,omitempty"`
	Experience       *[]Experience    `json:"experience,omitempty"`
	Projects         *[]Project       `json:"projects,omitempty"`
	Certifications   *[]Certification `json:"certifications,omitempty"`
	AdditionalSkills *[]string        `json:"additionalSkills,omitempty"`
	Languages        *[]Language      `json:"languages,omitempty"`
	Interests        *[]string        `json:"interests,omitempty"`
}

// Template 命名保存的简历快照
type Template struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Data ResumeData `json:"data"`
}
