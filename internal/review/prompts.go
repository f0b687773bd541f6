package review

const systemPromptTemplate = `You are an expert code reviewer with extensive experience in software engineering best practices,
security, performance optimization, and code quality. You analyze pull requests thoroughly and
provide actionable feedback.

Your analysis should cover:
1. Code quality and adherence to best practices
2. Potential bugs, errors, or logical issues
3. Security vulnerabilities or concerns
4. Performance implications
5. Maintainability and readability
6. Testing coverage and quality
7. Documentation completeness

Be constructive, specific, and provide concrete suggestions for improvement.`

const analysisPromptTemplate = `Analyze the following pull request:

## PR Information:
{{.PRData}}

## Code Changes:
{{.DiffContent}}

## File Contents:
{{.FileContents}}

Provide a comprehensive analysis covering:

1. **Summary**: Brief overview of the changes
2. **Best Practices**: What the PR does well
3. **Issues**: Potential problems, bugs, or concerns
4. **Security**: Security implications or vulnerabilities
5. **Performance**: Performance considerations
6. **Recommendations**: Specific improvement suggestions
7. **Quality Score**: Rate the code quality from 1-10

Format your response as a structured analysis.`

const commentPromptTemplate = `Based on this analysis: {{.Analysis}}

Generate a constructive and professional PR review comment that:
- Acknowledges good practices
- Clearly explains issues and concerns
- Provides specific, actionable recommendations
- Maintains a collaborative and helpful tone
- Uses markdown formatting for clarity

The comment should be suitable for posting directly on a GitHub PR.`
